package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "data", "archive.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// clockAt pins the archive clock to the returned setter.
func clockAt(a *Archive, start time.Time) func(time.Time) {
	now := start
	a.now = func() time.Time { return now }
	return func(t time.Time) { now = t }
}

func TestArchiveRecordAndList(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	set := clockAt(a, base)

	first := page.ContactMessage{Name: "Ada", Email: "ada@example.com", Body: "first", RemoteAddr: "203.0.113.7"}
	if err := a.Record(ctx, first, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	set(base.Add(time.Minute))
	second := page.ContactMessage{Name: "Grace", Email: "grace@example.com", Body: "second"}
	if err := a.Record(ctx, second, errors.New("relay timeout")); err != nil {
		t.Fatalf("record: %v", err)
	}

	messages, err := a.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	newest, oldest := messages[0], messages[1]
	if newest.Name != "Grace" || newest.Outcome != OutcomeFailed || newest.Error != "relay timeout" {
		t.Fatalf("unexpected newest message: %+v", newest)
	}
	if oldest.Name != "Ada" || oldest.Outcome != OutcomeSent || oldest.Error != "" {
		t.Fatalf("unexpected oldest message: %+v", oldest)
	}
	if oldest.HashedIP == "" || oldest.HashedIP == first.RemoteAddr {
		t.Fatalf("address should be stored hashed, got %q", oldest.HashedIP)
	}
	if newest.HashedIP != "" {
		t.Fatalf("no address means no hash, got %q", newest.HashedIP)
	}
	if !oldest.CreatedAt.Equal(base) {
		t.Fatalf("created_at = %v, want %v", oldest.CreatedAt, base)
	}

	limited, err := a.List(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].Name != "Grace" {
		t.Fatalf("limited list: %v %+v", err, limited)
	}
}

func TestArchiveHashIsStablePerProcess(t *testing.T) {
	a := openTestArchive(t)
	if a.hashIP("198.51.100.1") != a.hashIP("198.51.100.1") {
		t.Fatal("hash should be consistent for the same address")
	}
	if a.hashIP("198.51.100.1") == a.hashIP("198.51.100.2") {
		t.Fatal("different addresses should hash differently")
	}
	if got := len(a.hashIP("198.51.100.1")); got != 16 {
		t.Fatalf("hash length = %d, want 16", got)
	}
}

func TestArchiveDelete(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	if err := a.Record(ctx, page.ContactMessage{Name: "Ada", Email: "a@example.com", Body: "hi"}, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	messages, _ := a.List(ctx, 0)

	deleted, err := a.Delete(ctx, messages[0].ID)
	if err != nil || !deleted {
		t.Fatalf("delete existing: deleted=%v err=%v", deleted, err)
	}
	deleted, err = a.Delete(ctx, messages[0].ID)
	if err != nil || deleted {
		t.Fatalf("delete missing: deleted=%v err=%v", deleted, err)
	}
}

func TestArchivePrune(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	set := clockAt(a, base.AddDate(0, 0, -400))

	msg := page.ContactMessage{Name: "Ada", Email: "a@example.com", Body: "old"}
	if err := a.Record(ctx, msg, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	set(base.AddDate(0, 0, -1))
	msg.Body = "recent"
	if err := a.Record(ctx, msg, nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	set(base)
	removed, err := a.Prune(ctx, 365*24*time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	messages, _ := a.List(ctx, -1)
	if len(messages) != 1 || messages[0].Body != "recent" {
		t.Fatalf("unexpected survivors: %+v", messages)
	}

	if removed, err := a.Prune(ctx, 0); err != nil || removed != 0 {
		t.Fatalf("zero retention keeps everything: removed=%d err=%v", removed, err)
	}
}

func TestArchiveWrapKeepsOutcome(t *testing.T) {
	a := openTestArchive(t)
	ctx, cancel := context.WithCancel(context.Background())

	failing := errors.New("boom")
	wrapped := a.Wrap(page.RelayFunc(func(context.Context, page.ContactMessage) error {
		cancel()
		return failing
	}))
	if err := wrapped.Send(ctx, page.ContactMessage{Name: "Ada", Email: "a@example.com", Body: "hi"}); !errors.Is(err, failing) {
		t.Fatalf("wrapped relay changed the outcome: %v", err)
	}

	// Recorded even though the request context was cancelled mid-send.
	messages, err := a.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 1 || messages[0].Outcome != OutcomeFailed || messages[0].Error != "boom" {
		t.Fatalf("unexpected archive contents: %+v", messages)
	}
}
