package pinvault

import (
	"context"
	"errors"
	mathrand "math/rand"
	"strings"
	"testing"

	"github.com/sachk/pinvault/pin"
)

func newAccountTestEngine(t *testing.T, store Store) *Engine {
	t.Helper()

	engine, err := New().
		WithStore(store).
		WithRandSource(mathrand.New(mathrand.NewSource(7))).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func TestCreateAccount(t *testing.T) {
	store := newMockStore()
	engine := newAccountTestEngine(t, store)

	res, err := engine.CreateAccount(context.Background(), CreateAccountRequest{
		Username:        "sachin",
		StartingBalance: 10000,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if len(res.GeneratedPIN) != pin.LengthStandard {
		t.Fatalf("expected %d-digit PIN, got %q", pin.LengthStandard, res.GeneratedPIN)
	}
	if pin.IsWeak(res.GeneratedPIN) {
		t.Fatalf("issued weak PIN %q", res.GeneratedPIN)
	}
	if res.Record.PIN != res.GeneratedPIN {
		t.Fatal("result PIN differs from stored PIN")
	}
	if res.Record.WrongAttempts != 0 || res.Record.Locked {
		t.Fatalf("fresh record not clean: %+v", res.Record)
	}

	stored, ok := store.Get("sachin")
	if !ok {
		t.Fatal("record not persisted")
	}
	if stored != res.Record {
		t.Fatalf("stored %+v differs from result %+v", stored, res.Record)
	}
}

func TestCreateAccountExtendedLength(t *testing.T) {
	store := newMockStore()
	engine := newAccountTestEngine(t, store)

	res, err := engine.CreateAccount(context.Background(), CreateAccountRequest{
		Username:  "sachin",
		PINLength: pin.LengthExtended,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if len(res.GeneratedPIN) != pin.LengthExtended {
		t.Fatalf("expected %d-digit PIN, got %q", pin.LengthExtended, res.GeneratedPIN)
	}
}

func TestCreateAccountUnsupportedLength(t *testing.T) {
	engine := newAccountTestEngine(t, newMockStore())

	_, err := engine.CreateAccount(context.Background(), CreateAccountRequest{
		Username:  "sachin",
		PINLength: 5,
	})
	if !errors.Is(err, pin.ErrUnsupportedLength) {
		t.Fatalf("expected ErrUnsupportedLength, got %v", err)
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203"})
	engine := newAccountTestEngine(t, store)

	_, err := engine.CreateAccount(context.Background(), CreateAccountRequest{Username: "sachin"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateAccountInvalidUsername(t *testing.T) {
	engine := newAccountTestEngine(t, newMockStore())

	for _, username := range []string{
		"",
		"with|pipe",
		strings.Repeat("a", 33),
	} {
		_, err := engine.CreateAccount(context.Background(), CreateAccountRequest{Username: username})
		if !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("%q: expected ErrInvalidUsername, got %v", username, err)
		}
	}
}

func TestCreateAccountNegativeBalance(t *testing.T) {
	engine := newAccountTestEngine(t, newMockStore())

	_, err := engine.CreateAccount(context.Background(), CreateAccountRequest{
		Username:        "sachin",
		StartingBalance: -0.01,
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateAccountRoundsBalance(t *testing.T) {
	store := newMockStore()
	engine := newAccountTestEngine(t, store)

	res, err := engine.CreateAccount(context.Background(), CreateAccountRequest{
		Username:        "sachin",
		StartingBalance: 100.456,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if res.Record.Balance != 100.46 {
		t.Fatalf("expected 100.46, got %v", res.Record.Balance)
	}
}

func TestWithdraw(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", Balance: 1000})
	engine := newAccountTestEngine(t, store)

	record, _ := store.Get("sachin")
	record, err := engine.Withdraw(context.Background(), record, 250.25)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if record.Balance != 749.75 {
		t.Fatalf("expected 749.75, got %v", record.Balance)
	}

	stored, _ := store.Get("sachin")
	if stored.Balance != 749.75 {
		t.Fatalf("withdrawal not persisted: %v", stored.Balance)
	}
}

func TestWithdrawFullBalance(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", Balance: 42.42})
	engine := newAccountTestEngine(t, store)

	record, _ := store.Get("sachin")
	record, err := engine.Withdraw(context.Background(), record, 42.42)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if record.Balance != 0 {
		t.Fatalf("expected zero balance, got %v", record.Balance)
	}
}

func TestWithdrawInvalidAmount(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", Balance: 100})
	engine := newAccountTestEngine(t, store)

	record, _ := store.Get("sachin")
	for _, amount := range []float64{0, -1, -0.01} {
		if _, err := engine.Withdraw(context.Background(), record, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if store.updateCalls != 0 {
		t.Fatalf("rejected withdrawal wrote to the store %d times", store.updateCalls)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", Balance: 100})
	engine := newAccountTestEngine(t, store)

	record, _ := store.Get("sachin")
	_, err := engine.Withdraw(context.Background(), record, 100.01)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	stored, _ := store.Get("sachin")
	if stored.Balance != 100 {
		t.Fatalf("balance mutated on rejection: %v", stored.Balance)
	}
}

func TestGetAccount(t *testing.T) {
	store := newMockStore(AccountRecord{Username: "sachin", PIN: "1203", Balance: 100})
	engine := newAccountTestEngine(t, store)

	record, err := engine.GetAccount(context.Background(), "sachin")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if record.Username != "sachin" {
		t.Fatalf("unexpected record %+v", record)
	}

	if _, err := engine.GetAccount(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListAccounts(t *testing.T) {
	store, err := OpenFileStore(tempStorePath(t))
	if err != nil {
		t.Fatalf("OpenFileStore failed: %v", err)
	}
	for _, r := range []AccountRecord{
		{Username: "mark", PIN: "1203", Balance: 100},
		{Username: "dana", PIN: "4771", Balance: 20, WrongAttempts: 3, Locked: true},
	} {
		if err := store.Add(r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	engine := newAccountTestEngine(t, store)

	summaries, err := engine.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}

	want := []AccountSummary{
		{Username: "dana", Balance: 20, Locked: true},
		{Username: "mark", Balance: 100, Locked: false},
	}
	if len(summaries) != len(want) {
		t.Fatalf("expected %d summaries, got %d", len(want), len(summaries))
	}
	for i := range want {
		if summaries[i] != want[i] {
			t.Fatalf("summary %d: got %+v, want %+v", i, summaries[i], want[i])
		}
	}
}
