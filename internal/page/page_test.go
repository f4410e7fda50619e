package page

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeView struct {
	mu       sync.Mutex
	anchors  map[Section]bool
	renders  []State
	scrolled []Section
	toTop    int
	resets   int
	settled  chan State
}

func newFakeView(anchors ...Section) *fakeView {
	v := &fakeView{anchors: map[Section]bool{}, settled: make(chan State, 4)}
	for _, a := range anchors {
		v.anchors[a] = true
	}
	return v
}

func (v *fakeView) HasAnchor(s Section) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.anchors[s]
}

func (v *fakeView) ScrollIntoView(s Section) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolled = append(v.scrolled, s)
}

func (v *fakeView) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toTop++
}

func (v *fakeView) ResetForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *fakeView) Render(st State) {
	v.mu.Lock()
	v.renders = append(v.renders, st)
	v.mu.Unlock()
	if st.Status.Kind != KindNone && !st.Submitting {
		v.settled <- st
	}
}

func (v *fakeView) last() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders[len(v.renders)-1]
}

func (v *fakeView) renderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.renders)
}

// gatedRelay blocks every Send until release receives the result.
type gatedRelay struct {
	started chan ContactMessage
	release chan error
}

func newGatedRelay() *gatedRelay {
	return &gatedRelay{started: make(chan ContactMessage, 4), release: make(chan error)}
}

func (r *gatedRelay) Send(ctx context.Context, msg ContactMessage) error {
	r.started <- msg
	return <-r.release
}

var allAnchors = Sections

func validMessage() ContactMessage {
	return ContactMessage{Name: "Ada", Email: "ada@example.com", Body: "Hello there"}
}

func waitSettled(t *testing.T, v *fakeView) State {
	t.Helper()
	select {
	case st := <-v.settled:
		return st
	case <-time.After(2 * time.Second):
		t.Fatal("submission never settled")
		return State{}
	}
}

func TestNewRendersDefaultState(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)

	if v.renderCount() != 1 {
		t.Fatalf("expected one mount render, got %d", v.renderCount())
	}
	want := State{Active: SectionHome}
	if got := p.Snapshot(); got != want {
		t.Fatalf("unexpected default state: %+v", got)
	}
}

func TestScrollToOriginKeepsHome(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)

	p.Scroll(Geometry{ScrollY: 0})

	st := p.Snapshot()
	if st.ScrollTopVisible {
		t.Fatal("scroll-to-top should be hidden at offset 0")
	}
	if st.Active != SectionHome {
		t.Fatalf("active changed to %q", st.Active)
	}
}

func TestScrollIsStickyWithoutMatch(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)

	p.Scroll(Geometry{ScrollY: 1200, Anchors: map[Section]Rect{SectionSkills: {Top: 0, Bottom: 600}}})
	p.Scroll(Geometry{ScrollY: 1500, Anchors: map[Section]Rect{SectionSkills: {Top: -700, Bottom: -100}}})

	st := p.Snapshot()
	if st.Active != SectionSkills {
		t.Fatalf("expected active to stay skills, got %q", st.Active)
	}
	if !st.ScrollTopVisible {
		t.Fatal("expected scroll-to-top visible past the threshold")
	}
	if v.last() != st {
		t.Fatal("last render should match the snapshot")
	}
}

func TestNavigateEverySection(t *testing.T) {
	for _, sec := range Sections {
		v := newFakeView(allAnchors...)
		p := New(v, nil)
		p.Scroll(Geometry{ScrollY: 3000, Anchors: map[Section]Rect{SectionContact: {Top: 0, Bottom: 900}}})

		if err := p.Navigate(sec); err != nil {
			t.Fatalf("navigate %s: %v", sec, err)
		}
		if got := p.Snapshot().Active; got != sec {
			t.Fatalf("navigate %s: active=%q", sec, got)
		}
		if len(v.scrolled) != 1 || v.scrolled[0] != sec {
			t.Fatalf("navigate %s: scrolled=%v", sec, v.scrolled)
		}
	}
}

func TestNavigateClosesMenu(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)
	p.ToggleMenu()
	if !p.Snapshot().MenuOpen {
		t.Fatal("menu should be open after toggle")
	}

	if err := p.Navigate(SectionProjects); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	st := p.Snapshot()
	if st.MenuOpen {
		t.Fatal("menu should close on navigation")
	}
	if st.Active != SectionProjects {
		t.Fatalf("active=%q want projects", st.Active)
	}
}

func TestNavigateMissingAnchorIsNoop(t *testing.T) {
	v := newFakeView(SectionHome, SectionAbout)
	p := New(v, nil)
	p.ToggleMenu()
	before := p.Snapshot()
	renders := v.renderCount()

	if err := p.Navigate(SectionProjects); err != nil {
		t.Fatalf("missing anchor should not error, got %v", err)
	}
	if p.Snapshot() != before {
		t.Fatalf("state changed: %+v", p.Snapshot())
	}
	if v.renderCount() != renders || len(v.scrolled) != 0 {
		t.Fatal("missing anchor should not touch the view")
	}
}

func TestNavigateUnknownSection(t *testing.T) {
	p := New(newFakeView(allAnchors...), nil)
	if err := p.Navigate(Section("blog")); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestToggleThemeTwiceIsIdentity(t *testing.T) {
	p := New(newFakeView(allAnchors...), nil)
	p.ToggleMenu()
	p.Scroll(Geometry{ScrollY: 800, Anchors: map[Section]Rect{SectionAbout: {Top: 0, Bottom: 400}}})
	before := p.Snapshot()

	p.ToggleTheme()
	if !p.Snapshot().Dark {
		t.Fatal("first toggle should switch to dark")
	}
	p.ToggleTheme()

	if got := p.Snapshot(); got != before {
		t.Fatalf("double toggle changed state: %+v vs %+v", got, before)
	}
}

func TestScrollToTopOnlyTouchesView(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)
	before := p.Snapshot()

	p.ScrollToTop()

	if v.toTop != 1 {
		t.Fatalf("expected one scroll-to-top effect, got %d", v.toTop)
	}
	if p.Snapshot() != before {
		t.Fatal("scroll-to-top should not change state")
	}
}

func TestSubmitSuccess(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := <-relay.started
	if got.Name != "Ada" || got.Email != "ada@example.com" || got.Body != "Hello there" {
		t.Fatalf("relay got %+v", got)
	}
	if !p.Snapshot().Submitting {
		t.Fatal("submitting should stay true until the relay settles")
	}

	relay.release <- nil
	st := waitSettled(t, v)
	p.Wait()

	if st.Status != (Status{Message: MessageSent, Kind: KindSuccess}) {
		t.Fatalf("unexpected status %+v", st.Status)
	}
	if st.Submitting {
		t.Fatal("submitting should end false")
	}
	if v.resets != 1 {
		t.Fatalf("form should be reset once, got %d", v.resets)
	}
}

func TestSubmitFailureKeepsInputs(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-relay.started
	relay.release <- errors.New("quota exceeded")
	st := waitSettled(t, v)
	p.Wait()

	if st.Status != (Status{Message: MessageFailed, Kind: KindError}) {
		t.Fatalf("unexpected status %+v", st.Status)
	}
	if st.Submitting {
		t.Fatal("submitting should end false")
	}
	if v.resets != 0 {
		t.Fatal("failed submission must not reset the form")
	}
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	<-relay.started
	renders := v.renderCount()

	if err := p.Submit(context.Background(), validMessage()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	if v.renderCount() != renders {
		t.Fatal("rejected submit should not render")
	}

	relay.release <- nil
	waitSettled(t, v)
	p.Wait()
	select {
	case msg := <-relay.started:
		t.Fatalf("second submission reached the relay: %+v", msg)
	default:
	}
}

func TestSubmitClearsPreviousStatus(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	_ = p.Submit(context.Background(), validMessage())
	<-relay.started
	relay.release <- errors.New("boom")
	waitSettled(t, v)
	p.Wait()

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	<-relay.started
	st := p.Snapshot()
	if !st.Status.Empty() || st.Status.Message != "" {
		t.Fatalf("status should be cleared while submitting, got %+v", st.Status)
	}
	if !st.Submitting {
		t.Fatal("expected submitting")
	}
	relay.release <- nil
	waitSettled(t, v)
	p.Wait()
}

func TestSubmitRequiresFields(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, RelayFunc(func(context.Context, ContactMessage) error {
		t.Fatal("relay should not be called")
		return nil
	}))

	msg := validMessage()
	msg.Email = ""
	if err := p.Submit(context.Background(), msg); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if p.Snapshot().Submitting {
		t.Fatal("invalid submit must not start")
	}
}

func TestSubmitAcceptsWhitespaceFields(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	msg := validMessage()
	msg.Body = "   "
	if err := p.Submit(context.Background(), msg); err != nil {
		t.Fatalf("whitespace message should be sent, got %v", err)
	}
	if got := <-relay.started; got.Body != "   " {
		t.Fatalf("relay got body %q", got.Body)
	}
	relay.release <- nil
	if st := waitSettled(t, v); st.Status.Kind != KindSuccess {
		t.Fatalf("unexpected status %+v", st.Status)
	}
	p.Wait()
}

func TestSubmitWithoutRelayFails(t *testing.T) {
	v := newFakeView(allAnchors...)
	p := New(v, nil)

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	st := waitSettled(t, v)
	if st.Status.Kind != KindError {
		t.Fatalf("expected error status, got %+v", st.Status)
	}
}

func TestRelayTimeout(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := RelayFunc(func(ctx context.Context, _ ContactMessage) error {
		<-ctx.Done()
		return ctx.Err()
	})
	p := New(v, relay, WithRelayTimeout(20*time.Millisecond))

	if err := p.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if st := waitSettled(t, v); st.Status.Kind != KindError {
		t.Fatalf("expected timeout to surface as error, got %+v", st.Status)
	}
}

func TestUnmountDropsRendersButFinishesRelay(t *testing.T) {
	v := newFakeView(allAnchors...)
	relay := newGatedRelay()
	p := New(v, relay)

	_ = p.Submit(context.Background(), validMessage())
	<-relay.started
	p.Unmount()
	renders := v.renderCount()

	relay.release <- nil
	p.Wait()

	if v.renderCount() != renders {
		t.Fatal("unmounted page should not render")
	}
	st := p.Snapshot()
	if st.Submitting || st.Status.Kind != KindSuccess {
		t.Fatalf("relay outcome should still be recorded, got %+v", st)
	}
}

func TestParseSection(t *testing.T) {
	if s, ok := ParseSection("skills"); !ok || s != SectionSkills {
		t.Fatalf("ParseSection(skills) = %q, %v", s, ok)
	}
	if _, ok := ParseSection("Skills"); ok {
		t.Fatal("identifiers are case sensitive")
	}
	if got := SectionExperience.Label(); got != "Experience" {
		t.Fatalf("label=%q", got)
	}
}
