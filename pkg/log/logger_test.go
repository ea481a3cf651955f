package log

import (
	"context"
	"sync"
	"testing"
	"time"
)

// captureTransporter captures entries for testing
type captureTransporter struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *captureTransporter) Name() string { return "capture" }

func (c *captureTransporter) Write(entry Entry) error {
	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Close() error { return nil }

func (c *captureTransporter) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry{}, c.entries...)
}

func (c *captureTransporter) Last() *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil
	}
	e := c.entries[len(c.entries)-1]
	return &e
}

func setupTestLogger() (*Logger, *captureTransporter) {
	capture := &captureTransporter{}
	logger := New(Info, capture)
	return logger, capture
}

func TestLogger_Info_CreatesInfoEntry(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.Info("test message")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.Level != Info {
		t.Errorf("Level = %v, want %v", entry.Level, Info)
	}
	if entry.Message != "test message" {
		t.Errorf("Message = %q, want %q", entry.Message, "test message")
	}
}

func TestLogger_Error_CreatesErrorEntry(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.Error("error occurred")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.Level != Error {
		t.Errorf("Level = %v, want %v", entry.Level, Error)
	}
}

func TestLogger_BelowMinLevel_IsSuppressed(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.Debug("should not appear")
	time.Sleep(50 * time.Millisecond)

	if len(capture.Entries()) != 0 {
		t.Errorf("entries = %d, want 0 for suppressed level", len(capture.Entries()))
	}
}

func TestLogger_SetLevel_ChangesThreshold(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.SetLevel(Debug)
	logger.Debug("now visible")
	time.Sleep(50 * time.Millisecond)

	if capture.Last() == nil {
		t.Error("debug entry should be captured after SetLevel(Debug)")
	}
}

func TestLogger_KeyValuePairs_BecomeFields(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.Info("post created", "post_id", "abc-123", "group", "tech")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.Fields["post_id"] != "abc-123" {
		t.Errorf("post_id = %v, want abc-123", entry.Fields["post_id"])
	}
	if entry.Fields["group"] != "tech" {
		t.Errorf("group = %v, want tech", entry.Fields["group"])
	}
}

func TestLogger_With_StampsFieldsOnEveryEntry(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	child := logger.With("component", "scraper")
	child.Info("first")
	child.Info("second")
	time.Sleep(50 * time.Millisecond)

	entries := capture.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Fields["component"] != "scraper" {
			t.Errorf("component = %v, want scraper", e.Fields["component"])
		}
	}
}

func TestLogger_With_DoesNotAffectParent(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	logger.With("component", "scraper")
	logger.Info("parent entry")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if _, ok := entry.Fields["component"]; ok {
		t.Error("parent logger should not carry the child's fields")
	}
}

func TestLogger_InfoCtx_CarriesRequestID(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoCtx(ctx, "handled")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want req-42", entry.RequestID)
	}
}

func TestLogger_InfoCtx_MergesContextFields(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()

	ctx := WithFields(context.Background(), "tenant", "acme")
	logger.InfoCtx(ctx, "handled", "status", 200)
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.Fields["tenant"] != "acme" {
		t.Errorf("tenant = %v, want acme", entry.Fields["tenant"])
	}
	if entry.Fields["status"] != 200 {
		t.Errorf("status = %v, want 200", entry.Fields["status"])
	}
}

func TestLogger_Close_FlushesPendingEntries(t *testing.T) {
	logger, capture := setupTestLogger()

	for i := 0; i < 10; i++ {
		logger.Info("pending")
	}
	logger.Close()

	if len(capture.Entries()) != 10 {
		t.Errorf("entries after close = %d, want 10", len(capture.Entries()))
	}
}

func TestDefault_WithoutSetDefault_IsSilent(t *testing.T) {
	SetDefault(nil)

	// Must not panic and must not emit anywhere.
	GlobalInfo("into the void")
	GlobalError("also into the void")
}

func TestSetDefault_RoutesGlobalHelpers(t *testing.T) {
	logger, capture := setupTestLogger()
	defer logger.Close()
	SetDefault(logger)
	defer SetDefault(nil)

	GlobalInfo("via default", "k", "v")
	time.Sleep(50 * time.Millisecond)

	entry := capture.Last()
	if entry == nil {
		t.Fatal("no entry captured")
	}
	if entry.Message != "via default" {
		t.Errorf("Message = %q, want 'via default'", entry.Message)
	}
}
