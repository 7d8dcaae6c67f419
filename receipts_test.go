package pinvault

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sachk/pinvault/token"
)

func newReceiptTestEngine(t *testing.T, cfg SessionConfig) *Engine {
	t.Helper()

	engine, err := New().
		WithStore(newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})).
		WithSessionReceipts(cfg).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func TestSessionReceiptsDisabled(t *testing.T) {
	engine := newTestEngine(t, newMockStore(AccountRecord{Username: "sachin", PIN: "1203"}))

	if _, err := engine.BeginSession(context.Background(), AccountRecord{Username: "sachin"}); !errors.Is(err, ErrSessionReceiptsDisabled) {
		t.Fatalf("expected ErrSessionReceiptsDisabled, got %v", err)
	}
	if _, err := engine.ValidateSession(context.Background(), "anything"); !errors.Is(err, ErrSessionReceiptsDisabled) {
		t.Fatalf("expected ErrSessionReceiptsDisabled, got %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	engine := newReceiptTestEngine(t, SessionConfig{
		Enabled:    true,
		ReceiptTTL: time.Minute,
		SigningKey: bytes.Repeat([]byte("k"), 32),
	})

	record, err := engine.GetAccount(context.Background(), "sachin")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}

	receipt, err := engine.BeginSession(context.Background(), record)
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}
	username, err := engine.ValidateSession(context.Background(), receipt)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if username != "sachin" {
		t.Fatalf("expected sachin, got %q", username)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricReceiptIssued]; got != 1 {
		t.Fatalf("receipt issued counter = %d, want 1", got)
	}
}

func TestSessionExpired(t *testing.T) {
	engine := newReceiptTestEngine(t, SessionConfig{
		Enabled:    true,
		ReceiptTTL: time.Nanosecond,
		SigningKey: bytes.Repeat([]byte("k"), 32),
	})

	receipt, err := engine.BeginSession(context.Background(), AccountRecord{Username: "sachin"})
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := engine.ValidateSession(context.Background(), receipt); !errors.Is(err, token.ErrExpired) {
		t.Fatalf("expected token.ErrExpired, got %v", err)
	}
}

func TestSessionInvalidReceipt(t *testing.T) {
	engine := newReceiptTestEngine(t, SessionConfig{
		Enabled:    true,
		ReceiptTTL: time.Minute,
		SigningKey: bytes.Repeat([]byte("k"), 32),
	})

	if _, err := engine.ValidateSession(context.Background(), "garbage"); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("expected token.ErrInvalid, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricReceiptRejected]; got != 1 {
		t.Fatalf("receipt rejected counter = %d, want 1", got)
	}
}
