package pinvault

import (
	"context"
	"errors"
	"testing"
)

func TestChangePINSuccess(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", WrongAttempts: 2})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")
	res, err := engine.ChangePIN(context.Background(), record, "1203", "8316")
	if err != nil {
		t.Fatalf("ChangePIN failed: %v", err)
	}
	if res.Record.PIN != "8316" {
		t.Fatalf("expected new PIN, got %q", res.Record.PIN)
	}
	if res.Record.WrongAttempts != 0 || res.Attempts != 0 {
		t.Fatalf("attempts not reset: %+v", res)
	}
	if res.Remaining != 3 {
		t.Fatalf("expected full remaining budget, got %d", res.Remaining)
	}

	stored, _ := store.Get("sachin")
	if stored.PIN != "8316" || stored.WrongAttempts != 0 {
		t.Fatalf("change not persisted: %+v", stored)
	}
}

func TestChangePINWrongLength(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")
	_, err := engine.ChangePIN(context.Background(), record, "1203", "920471")
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}

	stored, _ := store.Get("sachin")
	if stored.PIN != "1203" {
		t.Fatalf("rejected change mutated PIN: %q", stored.PIN)
	}
}

func TestChangePINWeakRejected(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")
	for _, weak := range []string{"1111", "1234", "4321", "2580", "1122"} {
		if len(weak) != len(record.PIN) {
			continue
		}
		_, err := engine.ChangePIN(context.Background(), record, "1203", weak)
		if !errors.Is(err, ErrWeakPIN) {
			t.Fatalf("%q: expected ErrWeakPIN, got %v", weak, err)
		}
	}

	stored, _ := store.Get("sachin")
	if stored.PIN != "1203" {
		t.Fatalf("rejected change mutated PIN: %q", stored.PIN)
	}
}

func TestChangePINNonDigitRejected(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")

	// "9|99" passes the length and weakness checks but would smuggle the
	// field separator into the stored line.
	for _, bad := range []string{"9|99", "12a4", "1 34", "12\n4"} {
		_, err := engine.ChangePIN(context.Background(), record, "1203", bad)
		if !errors.Is(err, ErrInvalidPIN) {
			t.Fatalf("%q: expected ErrInvalidPIN, got %v", bad, err)
		}
	}

	stored, _ := store.Get("sachin")
	if stored.PIN != "1203" {
		t.Fatalf("rejected change mutated PIN: %q", stored.PIN)
	}
}

func TestChangePINNonDigitLeavesFileReadable(t *testing.T) {
	path := tempStorePath(t)
	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore failed: %v", err)
	}
	if err := store.Add(AccountRecord{Username: "mark", PIN: "1203", Balance: 100}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	engine := newTestEngine(t, store)

	record, _ := store.Get("mark")
	if _, err := engine.ChangePIN(context.Background(), record, "1203", "9|99"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}

	// The account must survive a reload with its old PIN.
	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, ok := reopened.Get("mark")
	if !ok {
		t.Fatalf("account lost after rejected change; %d lines skipped", reopened.Skipped())
	}
	if got.PIN != "1203" || got.Balance != 100 {
		t.Fatalf("unexpected reloaded record %+v", got)
	}
}

func TestChangePINAuthFailurePropagates(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")
	res, err := engine.ChangePIN(context.Background(), record, "9999", "8316")
	if !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected ErrPINMismatch, got %v", err)
	}
	if res.Attempts != 1 {
		t.Fatalf("expected failure to count, got %d attempts", res.Attempts)
	}

	// The wrong attempt is persisted; the PIN is not touched.
	stored, _ := store.Get("sachin")
	if stored.PIN != "1203" || stored.WrongAttempts != 1 {
		t.Fatalf("unexpected stored state: %+v", stored)
	}
}

func TestChangePINLockedRejected(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", WrongAttempts: 3, Locked: true})
	engine := newTestEngine(t, store)

	record, _ := store.Get("sachin")
	_, err := engine.ChangePIN(context.Background(), record, "1203", "8316")
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}
