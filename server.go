package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Saicharan2707l/portfolio/internal/page"
	"github.com/Saicharan2707l/portfolio/internal/relay"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// site holds everything the HTTP handlers need.
type site struct {
	cfg     *Config
	content *Content
	relay   page.Relay
	archive *Archive
	logger  *zap.Logger

	// baseCtx outlives individual connections; relay calls run under it so
	// a closed tab does not cancel a message already on its way.
	baseCtx context.Context

	// pending counts contact deliveries started over the live connection.
	// Add only runs under pendingMu while stopping is false.
	pendingMu sync.Mutex
	pending   sync.WaitGroup
	stopping  bool

	liveMu sync.Mutex
	live   map[*websocket.Conn]struct{}
}

type indexData struct {
	Content *Content
	Nav     []page.Section
	State   page.State
	Year    int
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"md":       renderMarkdown,
		"mdInline": renderInline,
		"tagColor": func(i int) int { return i % 3 },
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

// router builds the gin engine with every route mounted.
func (s *site) router() (*gin.Engine, error) {
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.baseCtx == nil {
		s.baseCtx = context.Background()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	if dir := s.cfg.Site.AssetsDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/assets", dir)
		} else {
			s.logger.Warn("assets directory not found; profile image and resume will 404", zap.String("dir", dir))
		}
	}

	// Home page route
	r.GET("/", s.handleIndex)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Plain form post, used when the live connection is unavailable
	r.POST("/contact", s.handleContact)

	// Live page events
	r.GET("/live", s.handleLive)

	if s.cfg.AdminEnabled() && s.archive != nil {
		newAdmin(s.cfg.Admin, s.archive, s.logger).routes(r)
	}

	return r, nil
}

func (s *site) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexData{
		Content: s.content,
		Nav:     s.content.NavSections(),
		State:   page.DefaultState(),
		Year:    time.Now().Year(),
	})
}

// handleContact sends one message synchronously and answers with the
// status fragment.
func (s *site) handleContact(c *gin.Context) {
	log := requestLog(c, s.logger)

	var msg page.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		log.Debug("contact form rejected", zap.Error(err))
		c.HTML(http.StatusBadRequest, "contact-status.html", page.Status{Message: page.MessageFailed, Kind: page.KindError})
		return
	}
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusBadRequest, "contact-status.html", page.Status{Message: page.MessageFailed, Kind: page.KindError})
		return
	}
	msg.RemoteAddr = c.ClientIP()

	ctx := c.Request.Context()
	if s.cfg.Relay.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Relay.Timeout)
		defer cancel()
	}

	if err := s.relay.Send(ctx, msg); err != nil {
		log.Warn("contact relay failed", zap.Error(err))
		c.HTML(http.StatusBadGateway, "contact-status.html", page.Status{Message: page.MessageFailed, Kind: page.KindError})
		return
	}

	log.Info("contact message sent")
	c.HTML(http.StatusOK, "contact-status.html", page.Status{Message: page.MessageSent, Kind: page.KindSuccess})
}

// newRelay builds the configured relay, wrapped by the archive when one
// is open.
func newRelay(cfg RelayConfig, archive *Archive, logger *zap.Logger) (page.Relay, error) {
	var out page.Relay
	switch cfg.Provider {
	case "emailjs":
		r, err := relay.NewEmailJS(relay.EmailJSConfig{
			Endpoint:   cfg.EmailJS.Endpoint,
			ServiceID:  cfg.EmailJS.ServiceID,
			TemplateID: cfg.EmailJS.TemplateID,
			PublicKey:  cfg.EmailJS.PublicKey,
			PrivateKey: cfg.EmailJS.PrivateKey,
		})
		if err != nil {
			return nil, err
		}
		out = r
	case "smtp":
		r, err := relay.NewSMTP(relay.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			To:       cfg.SMTP.To,
		})
		if err != nil {
			return nil, err
		}
		out = r
	case "", "none":
		logger.Warn("no contact relay configured; submissions will fail")
		out = page.RelayFunc(func(context.Context, page.ContactMessage) error {
			return errRelayDisabled
		})
	default:
		return nil, errors.New("unknown relay provider " + cfg.Provider)
	}

	if archive != nil {
		out = archive.Wrap(out)
	}
	return out, nil
}

// beginDelivery counts one more in-flight delivery. It reports false once
// the site has started shutting down.
func (s *site) beginDelivery() bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.stopping {
		return false
	}
	s.pending.Add(1)
	return true
}

func (s *site) stopDeliveries() {
	s.pendingMu.Lock()
	s.stopping = true
	s.pendingMu.Unlock()
}

// drain refuses new deliveries and waits for in-flight ones, or for ctx.
func (s *site) drain(ctx context.Context) error {
	s.stopDeliveries()
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var errRelayDisabled = errors.New("contact relay disabled")
