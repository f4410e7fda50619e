package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// stopFunc releases one component during shutdown.
type stopFunc func(ctx context.Context) error

type component struct {
	name string
	stop stopFunc
}

// lifecycle stops registered components in reverse registration order once
// the process is asked to exit.
type lifecycle struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
	stopped    bool
}

func newLifecycle(timeout time.Duration, logger *zap.Logger) *lifecycle {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &lifecycle{timeout: timeout, logger: logger}
}

// onStop registers fn to run at shutdown.
func (l *lifecycle) onStop(name string, fn stopFunc) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.components = append(l.components, component{name: name, stop: fn})
}

// stop runs every registered stopFunc once, newest first, within the
// shutdown timeout. Later calls are no-ops.
func (l *lifecycle) stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return nil
	}
	l.stopped = true

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var result error
	for i := len(l.components) - 1; i >= 0; i-- {
		c := l.components[i]
		if err := c.stop(ctx); err != nil {
			l.logger.Error("shutdown step failed", zap.String("component", c.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		l.logger.Info("component stopped", zap.String("component", c.name))
	}
	return result
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func (l *lifecycle) signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			l.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
