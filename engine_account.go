package pinvault

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// CreateAccount validates the username, generates a PIN of the requested
// length, and persists a fresh record with zero wrong attempts and an
// unlocked state. The generated PIN is returned once in the result and
// never re-surfaced by any other operation.
func (e *Engine) CreateAccount(ctx context.Context, req CreateAccountRequest) (*CreateAccountResult, error) {
	if e == nil || e.store == nil || e.generator == nil {
		return nil, ErrEngineNotReady
	}

	username := req.Username
	if username == "" ||
		strings.Contains(username, fieldSeparator) ||
		(e.config.Account.UsernameMaxLength > 0 && len(username) > e.config.Account.UsernameMaxLength) {
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, username, ErrInvalidUsername, func() map[string]string {
			return map[string]string{
				"reason": "invalid_username",
			}
		})
		return nil, ErrInvalidUsername
	}
	if req.StartingBalance < 0 {
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, username, ErrInvalidAmount, func() map[string]string {
			return map[string]string{
				"reason": "negative_balance",
			}
		})
		return nil, ErrInvalidAmount
	}

	length := req.PINLength
	if length == 0 {
		length = e.config.Pin.DefaultLength
	}

	if e.store.Exists(username) {
		e.metricInc(MetricAccountCreationDuplicate)
		e.emitAudit(ctx, auditEventAccountCreationDupe, false, username, ErrUserAlreadyExists, nil)
		return nil, ErrUserAlreadyExists
	}

	generated, err := e.generator.Generate(length)
	if err != nil {
		e.metricInc(MetricAccountCreationFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, username, err, func() map[string]string {
			return map[string]string{
				"reason": "pin_generation",
			}
		})
		return nil, err
	}

	record := AccountRecord{
		Username: username,
		PIN:      generated,
		Balance:  roundCents(req.StartingBalance),
	}
	if err := e.store.Add(record); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			e.metricInc(MetricAccountCreationDuplicate)
			e.emitAudit(ctx, auditEventAccountCreationDupe, false, username, err, nil)
		} else {
			e.metricInc(MetricAccountCreationFailure)
			e.emitAudit(ctx, auditEventAccountCreationFailure, false, username, err, nil)
		}
		return nil, err
	}

	e.metricInc(MetricAccountCreated)
	pinLength := length
	e.emitAudit(ctx, auditEventAccountCreationSuccess, true, username, nil, func() map[string]string {
		return map[string]string{
			"pin_length": strconv.Itoa(pinLength),
		}
	})

	return &CreateAccountResult{
		Record:       record,
		GeneratedPIN: generated,
	}, nil
}

// Withdraw subtracts amount from the record's balance and persists. The
// amount must be positive and must not exceed the balance; the balance can
// never go negative. Callers must authenticate before any balance-affecting
// operation — Withdraw itself performs no PIN check.
func (e *Engine) Withdraw(ctx context.Context, record AccountRecord, amount float64) (AccountRecord, error) {
	if e == nil || e.store == nil {
		return record, ErrEngineNotReady
	}

	if amount <= 0 {
		e.metricInc(MetricWithdrawalRejected)
		e.emitAudit(ctx, auditEventWithdrawalFailure, false, record.Username, ErrInvalidAmount, nil)
		return record, ErrInvalidAmount
	}

	amount = roundCents(amount)
	if amount > record.Balance {
		e.metricInc(MetricWithdrawalRejected)
		e.emitAudit(ctx, auditEventWithdrawalFailure, false, record.Username, ErrInsufficientFunds, nil)
		return record, ErrInsufficientFunds
	}

	record.Balance = roundCents(record.Balance - amount)
	if err := e.store.Update(record); err != nil {
		e.emitAudit(ctx, auditEventWithdrawalFailure, false, record.Username, err, nil)
		return record, err
	}

	e.metricInc(MetricWithdrawalSuccess)
	withdrawn := amount
	e.emitAudit(ctx, auditEventWithdrawalSuccess, true, record.Username, nil, func() map[string]string {
		return map[string]string{
			"amount": strconv.FormatFloat(withdrawn, 'f', 2, 64),
		}
	})

	return record, nil
}

// GetAccount returns a copy of the stored record, or [ErrUserNotFound].
func (e *Engine) GetAccount(ctx context.Context, username string) (AccountRecord, error) {
	if e == nil || e.store == nil {
		return AccountRecord{}, ErrEngineNotReady
	}
	record, ok := e.store.Get(username)
	if !ok {
		return AccountRecord{}, ErrUserNotFound
	}
	return record, nil
}

// ListAccounts returns the administrative view of every account, ordered by
// username. The PIN field is never included.
func (e *Engine) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	accounts := e.store.Accounts()
	out := make([]AccountSummary, 0, len(accounts))
	for _, record := range accounts {
		out = append(out, AccountSummary{
			Username: record.Username,
			Balance:  record.Balance,
			Locked:   record.Locked,
		})
	}
	return out, nil
}
