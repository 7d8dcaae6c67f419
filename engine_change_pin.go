package pinvault

import (
	"context"

	"github.com/sachk/pinvault/pin"
)

// ChangePIN replaces the record's PIN after a successful authentication.
//
// Authentication failures propagate unchanged from [Engine.Authenticate].
// The new PIN must match the current PIN's length ([ErrInvalidLength]), be
// decimal digits only ([ErrInvalidPIN]), and pass the quality policy
// ([ErrWeakPIN]); rejected changes leave the stored PIN untouched. On success the PIN is replaced, the wrong-attempt counter
// reset, and the record persisted.
func (e *Engine) ChangePIN(ctx context.Context, record AccountRecord, enteredPIN, newPIN string) (AuthResult, error) {
	res, err := e.Authenticate(ctx, record, enteredPIN)
	if err != nil {
		return res, err
	}
	record = res.Record

	if len(newPIN) != len(record.PIN) {
		e.metricInc(MetricPINChangeInvalidLength)
		e.emitAudit(ctx, auditEventPINChangeFailure, false, record.Username, ErrInvalidLength, nil)
		return res, ErrInvalidLength
	}
	if !pin.IsDigits(newPIN) {
		e.metricInc(MetricPINChangeInvalidPIN)
		e.emitAudit(ctx, auditEventPINChangeFailure, false, record.Username, ErrInvalidPIN, nil)
		return res, ErrInvalidPIN
	}
	if pin.IsWeak(newPIN) {
		e.metricInc(MetricPINChangeWeakRejected)
		e.emitAudit(ctx, auditEventPINChangeFailure, false, record.Username, ErrWeakPIN, nil)
		return res, ErrWeakPIN
	}

	record.PIN = newPIN
	record.WrongAttempts = 0
	if err := e.store.Update(record); err != nil {
		e.emitAudit(ctx, auditEventPINChangeFailure, false, record.Username, err, nil)
		return res, err
	}

	res.Record = record
	res.Attempts = 0
	res.Remaining = e.config.Account.MaxWrongAttempts

	e.metricInc(MetricPINChangeSuccess)
	e.emitAudit(ctx, auditEventPINChangeSuccess, true, record.Username, nil, nil)

	return res, nil
}
