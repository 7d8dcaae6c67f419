package pinvault

import (
	"context"
	"strconv"

	"github.com/sachk/pinvault/pin"
	"github.com/sachk/pinvault/token"
)

// Engine applies the authentication and PIN-change state machine against a
// [Store]. Engines are built through [Builder.Build] and treated as
// immutable afterwards. All operations are synchronous; the only I/O is the
// store rewrite triggered by a persisted mutation.
type Engine struct {
	config    Config
	store     Store
	generator *pin.Generator
	receipts  *token.Manager
	audit     *auditDispatcher
	metrics   *Metrics
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Authenticate applies one PIN attempt against the record and persists the
// resulting state.
//
// A locked record fails immediately with [ErrAccountLocked] and no attempt
// is counted. A matching PIN resets the wrong-attempt counter. A mismatch
// increments it, locks the record once the counter reaches
// Config.Account.MaxWrongAttempts, persists regardless, and fails with
// [ErrPINMismatch]; the result carries the attempt count and the remaining
// budget. The locking attempt itself reports [ErrPINMismatch] — callers
// observe Locked on the returned record.
func (e *Engine) Authenticate(ctx context.Context, record AccountRecord, enteredPIN string) (AuthResult, error) {
	if e == nil || e.store == nil {
		return AuthResult{Record: record}, ErrEngineNotReady
	}

	max := e.config.Account.MaxWrongAttempts

	if record.Locked {
		e.metricInc(MetricAuthLockedRejected)
		e.emitAudit(ctx, auditEventAuthLockedRejected, false, record.Username, ErrAccountLocked, nil)
		return AuthResult{Record: record, Attempts: record.WrongAttempts}, ErrAccountLocked
	}

	if enteredPIN == record.PIN {
		record.WrongAttempts = 0
		if err := e.store.Update(record); err != nil {
			e.emitAudit(ctx, auditEventAuthFailure, false, record.Username, err, nil)
			return AuthResult{Record: record}, err
		}
		e.metricInc(MetricAuthSuccess)
		e.emitAudit(ctx, auditEventAuthSuccess, true, record.Username, nil, nil)
		return AuthResult{Record: record, Remaining: max}, nil
	}

	record.WrongAttempts++
	lockedNow := false
	if record.WrongAttempts >= max {
		record.Locked = true
		lockedNow = true
	}
	if err := e.store.Update(record); err != nil {
		e.emitAudit(ctx, auditEventAuthFailure, false, record.Username, err, nil)
		return AuthResult{Record: record}, err
	}

	remaining := max - record.WrongAttempts
	if remaining < 0 {
		remaining = 0
	}

	e.metricInc(MetricAuthFailure)
	attempts := record.WrongAttempts
	e.emitAudit(ctx, auditEventAuthFailure, false, record.Username, ErrPINMismatch, func() map[string]string {
		return map[string]string{
			"attempts":  strconv.Itoa(attempts),
			"remaining": strconv.Itoa(remaining),
		}
	})
	if lockedNow {
		e.metricInc(MetricAccountLockout)
		e.emitAudit(ctx, auditEventAccountLockout, false, record.Username, ErrAccountLocked, func() map[string]string {
			return map[string]string{
				"attempts": strconv.Itoa(attempts),
			}
		})
	}

	return AuthResult{Record: record, Attempts: attempts, Remaining: remaining}, ErrPINMismatch
}
