// Package page holds the behaviour of the portfolio page: the view state
// record and the handlers for scroll, navigation, theme, menu and contact
// form events. Rendering and the email relay sit behind interfaces so the
// same page drives the browser over a websocket and the terminal preview.
package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownSection is returned by Navigate for identifiers outside
// Sections.
var ErrUnknownSection = errors.New("page: unknown section")

var errNoRelay = errors.New("page: no relay configured")

// View is the rendering layer a Page drives.
type View interface {
	// HasAnchor reports whether the rendered document contains s.
	HasAnchor(s Section) bool
	// ScrollIntoView smoothly scrolls s into view.
	ScrollIntoView(s Section)
	// ScrollToTop smoothly scrolls to offset zero.
	ScrollToTop()
	// ResetForm clears the contact form inputs.
	ResetForm()
	// Render presents st.
	Render(st State)
}

// Option configures a Page.
type Option func(*Page)

// WithLogger sets the logger used for relay failures.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRelayTimeout bounds each relay call. Zero means no deadline.
func WithRelayTimeout(d time.Duration) Option {
	return func(p *Page) {
		p.timeout = d
	}
}

// Page is one mounted portfolio page.
type Page struct {
	relay   Relay
	logger  *zap.Logger
	timeout time.Duration

	// emit serialises state transitions together with the view calls they
	// produce, so renders reach the view in transition order.
	emit sync.Mutex

	mu    sync.Mutex
	view  View
	state State

	inflight sync.WaitGroup
}

// New mounts a page on view with default state and renders it once.
func New(view View, relay Relay, opts ...Option) *Page {
	if relay == nil {
		relay = RelayFunc(func(context.Context, ContactMessage) error { return errNoRelay })
	}
	p := &Page{
		relay:  relay,
		logger: zap.NewNop(),
		view:   view,
		state:  DefaultState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if view != nil {
		view.Render(p.state)
	}
	return p
}

// Snapshot returns a copy of the current state.
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Unmount detaches the view. Later transitions still update state but
// nothing is rendered; an in-flight submission runs to completion.
func (p *Page) Unmount() {
	p.mu.Lock()
	p.view = nil
	p.mu.Unlock()
}

// Wait blocks until no submission is in flight.
func (p *Page) Wait() {
	p.inflight.Wait()
}

// Scroll applies a viewport snapshot. The active section only changes
// when some anchor spans the activation line.
func (p *Page) Scroll(g Geometry) {
	t := Track(g)
	p.transition(func(st *State) {
		st.ScrollTopVisible = t.ScrollTopVisible
		if t.Matched {
			st.Active = t.Active
		}
	})
}

// Navigate scrolls to s, makes it active and closes the mobile menu. It
// does nothing when the document has no anchor for s.
func (p *Page) Navigate(s Section) error {
	if !s.Valid() {
		return ErrUnknownSection
	}

	p.emit.Lock()
	defer p.emit.Unlock()

	view := p.currentView()
	if view == nil || !view.HasAnchor(s) {
		return nil
	}
	view.ScrollIntoView(s)
	view.Render(p.mutate(func(st *State) {
		st.Active = s
		st.MenuOpen = false
	}))
	return nil
}

// ToggleTheme flips between light and dark.
func (p *Page) ToggleTheme() {
	p.transition(func(st *State) {
		st.Dark = !st.Dark
	})
}

// ToggleMenu opens or closes the mobile menu.
func (p *Page) ToggleMenu() {
	p.transition(func(st *State) {
		st.MenuOpen = !st.MenuOpen
	})
}

// ScrollToTop scrolls the view back to offset zero.
func (p *Page) ScrollToTop() {
	p.emit.Lock()
	defer p.emit.Unlock()
	if view := p.currentView(); view != nil {
		view.ScrollToTop()
	}
}

// Submit starts delivering msg through the relay and returns without
// waiting for it. The state shows Submitting until the relay settles,
// then carries the success or failure status. A submission made while
// another is in flight returns ErrSubmitInFlight and changes nothing.
func (p *Page) Submit(ctx context.Context, msg ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	p.emit.Lock()
	defer p.emit.Unlock()

	p.mu.Lock()
	if p.state.Submitting {
		p.mu.Unlock()
		return ErrSubmitInFlight
	}
	p.state.Status = Status{}
	p.state.Submitting = true
	st, view := p.state, p.view
	p.mu.Unlock()

	p.inflight.Add(1)
	if view != nil {
		view.Render(st)
	}
	go p.deliver(ctx, msg)
	return nil
}

func (p *Page) deliver(ctx context.Context, msg ContactMessage) {
	defer p.inflight.Done()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	err := p.relay.Send(ctx, msg)

	p.emit.Lock()
	defer p.emit.Unlock()

	view := p.currentView()
	status := Status{Message: MessageSent, Kind: KindSuccess}
	if err != nil {
		p.logger.Warn("contact relay failed", zap.Error(err))
		status = Status{Message: MessageFailed, Kind: KindError}
	} else if view != nil {
		view.ResetForm()
	}

	st := p.mutate(func(st *State) {
		st.Status = status
		st.Submitting = false
	})
	if view != nil {
		view.Render(st)
	}
}

func (p *Page) transition(fn func(*State)) {
	p.emit.Lock()
	defer p.emit.Unlock()
	st := p.mutate(fn)
	if view := p.currentView(); view != nil {
		view.Render(st)
	}
}

func (p *Page) mutate(fn func(*State)) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.state)
	return p.state
}

func (p *Page) currentView() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}
