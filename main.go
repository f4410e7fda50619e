package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a live page and contact form",
	Long: `portfolio serves a single-page portfolio. The page keeps its state on
the server over a websocket: scroll tracking, navigation, theme, the
mobile menu and the contact form all run as page events. Contact
messages go out through EmailJS or SMTP and can be archived in sqlite.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

var previewNoAltScreen bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the page in the terminal",
	RunE:  runPreview,
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Validate the content file and print its outline",
	RunE:  runContent,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	previewCmd.Flags().BoolVar(&previewNoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	rootCmd.AddCommand(serveCmd, previewCmd, contentCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch cfg.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	logger := newLogger(cfg.Log)
	defer logger.Sync()

	content, err := LoadContent(cfg.Site.ContentFile)
	if err != nil {
		return err
	}

	lc := newLifecycle(cfg.HTTP.ShutdownTimeout, logger)
	ctx, cancel := lc.signalContext(cmd.Context())
	defer cancel()

	var archive *Archive
	if cfg.Archive.Path != "" {
		archive, err = OpenArchive(cfg.Archive.Path, logger.Named("archive"))
		if err != nil {
			return err
		}
		lc.onStop("archive", func(context.Context) error {
			return archive.Close()
		})
		// Clean up old messages in background
		go func() {
			if _, err := archive.Prune(ctx, cfg.Archive.Retention); err != nil {
				logger.Error("archive prune failed", zap.Error(err))
			}
		}()
	}

	rel, err := newRelay(cfg.Relay, archive, logger)
	if err != nil {
		return err
	}

	s := &site{
		cfg:     cfg,
		content: content,
		relay:   rel,
		archive: archive,
		logger:  logger,
		baseCtx: context.Background(),
	}
	handler, err := s.router()
	if err != nil {
		return err
	}
	lc.onStop("contact relay", s.drain)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeLive)
	lc.onStop("http server", srv.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("env", cfg.Env),
			zap.String("relay", cfg.Relay.Provider),
			zap.Bool("archive", archive != nil),
			zap.Bool("admin", cfg.AdminEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server crashed", zap.Error(err))
		_ = lc.stop(context.Background())
		return err
	}

	if err := lc.stop(context.Background()); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
		return err
	}
	return nil
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	content, err := LoadContent(cfg.Site.ContentFile)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(cmd.Context()), tea.WithMouseCellMotion()}
	if !previewNoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	// Logging to stdout would draw over the terminal UI.
	program := tea.NewProgram(newPreview(content, zap.NewNop()), opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

func runContent(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	content, err := LoadContent(cfg.Site.ContentFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := cfg.Site.ContentFile
	if source == "" {
		source = "built-in"
	}
	fmt.Fprintf(out, "%s (%s)\n", content.Owner.Name, source)
	for _, s := range content.NavSections() {
		fmt.Fprintf(out, "  #%-11s %s\n", s, content.outline(s))
	}
	return nil
}
