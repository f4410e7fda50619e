package main

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

const liveReadLimit = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// liveEvent is the incoming websocket message format.
type liveEvent struct {
	Type    string               `json:"type"` // scroll, nav, theme, menu, scroll_top, submit
	ScrollY float64              `json:"scroll_y"`
	Anchors map[string]page.Rect `json:"anchors"`
	Section string               `json:"section"`
	Fields  map[string]string    `json:"fields"`
}

// liveMessage is the outgoing websocket message format.
type liveMessage struct {
	Type    string      `json:"type"` // state, scroll_to, reset_form, error
	State   *page.State `json:"state,omitempty"`
	Section string      `json:"section,omitempty"`
	Message string      `json:"message,omitempty"`
}

// liveView renders a page by sending messages down its websocket.
type liveView struct {
	conn    *websocket.Conn
	anchors map[page.Section]bool
	logger  *zap.Logger

	mu sync.Mutex
}

func (v *liveView) HasAnchor(s page.Section) bool {
	return v.anchors[s]
}

func (v *liveView) ScrollIntoView(s page.Section) {
	v.send(liveMessage{Type: "scroll_to", Section: string(s)})
}

func (v *liveView) ScrollToTop() {
	v.send(liveMessage{Type: "scroll_to"})
}

func (v *liveView) ResetForm() {
	v.send(liveMessage{Type: "reset_form"})
}

func (v *liveView) Render(st page.State) {
	v.send(liveMessage{Type: "state", State: &st})
}

func (v *liveView) sendError(message string) {
	v.send(liveMessage{Type: "error", Message: message})
}

func (v *liveView) send(msg liveMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.conn.WriteJSON(msg); err != nil {
		v.logger.Debug("live write failed", zap.Error(err))
	}
}

// handleLive mounts a page for the lifetime of one websocket connection.
func (s *site) handleLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("live upgrade failed", zap.Error(err))
		return
	}
	s.track(conn)
	defer s.untrack(conn)
	conn.SetReadLimit(liveReadLimit)

	log := requestLog(c, s.logger).With(zap.String("session_id", uuid.NewString()))
	log.Debug("page mounted")

	view := &liveView{conn: conn, anchors: s.content.Anchors(), logger: log}
	p := page.New(view, s.relay, page.WithLogger(log), page.WithRelayTimeout(s.cfg.Relay.Timeout))
	defer func() {
		p.Unmount()
		log.Debug("page unmounted")
	}()

	remote := c.ClientIP()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn("live read failed", zap.Error(err))
			}
			return
		}
		var ev liveEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Debug("live message rejected", zap.Error(err))
			view.sendError("invalid message format")
			continue
		}
		s.dispatch(p, view, ev, remote, log)
	}
}

func (s *site) dispatch(p *page.Page, view *liveView, ev liveEvent, remote string, log *zap.Logger) {
	switch ev.Type {
	case "scroll":
		g := page.Geometry{ScrollY: ev.ScrollY, Anchors: make(map[page.Section]page.Rect, len(ev.Anchors))}
		for name, rect := range ev.Anchors {
			if sec, ok := page.ParseSection(name); ok {
				g.Anchors[sec] = rect
			}
		}
		p.Scroll(g)
	case "nav":
		sec, ok := page.ParseSection(ev.Section)
		if !ok {
			view.sendError("unknown section: " + ev.Section)
			return
		}
		_ = p.Navigate(sec)
	case "theme":
		p.ToggleTheme()
	case "menu":
		p.ToggleMenu()
	case "scroll_top":
		p.ScrollToTop()
	case "submit":
		msg := page.MessageFromFields(ev.Fields)
		msg.RemoteAddr = remote
		if !s.beginDelivery() {
			view.sendError("server is shutting down")
			return
		}
		err := p.Submit(s.baseCtx, msg)
		if err == nil {
			go func() {
				defer s.pending.Done()
				p.Wait()
			}()
			return
		}
		s.pending.Done()
		switch {
		case errors.Is(err, page.ErrMissingField):
			view.sendError("name, email and message are required")
		case errors.Is(err, page.ErrSubmitInFlight):
			log.Debug("submit ignored while in flight")
		default:
			log.Error("submit failed", zap.Error(err))
		}
	default:
		view.sendError("unknown message type: " + ev.Type)
	}
}

func (s *site) track(conn *websocket.Conn) {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	if s.live == nil {
		s.live = make(map[*websocket.Conn]struct{})
	}
	s.live[conn] = struct{}{}
}

func (s *site) untrack(conn *websocket.Conn) {
	s.liveMu.Lock()
	delete(s.live, conn)
	s.liveMu.Unlock()
	conn.Close()
}

// closeLive tells every connected page the server is going away. The read
// loops then end and unmount their pages.
func (s *site) closeLive() {
	s.stopDeliveries()
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	for conn := range s.live {
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		conn.Close()
	}
}
