package pinvault

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventAuthSuccess            = "auth_success"
	auditEventAuthFailure            = "auth_failure"
	auditEventAuthLockedRejected     = "auth_locked_rejected"
	auditEventAccountLockout         = "account_lockout"
	auditEventPINChangeSuccess       = "pin_change_success"
	auditEventPINChangeFailure       = "pin_change_failure"
	auditEventAccountCreationSuccess = "account_creation_success"
	auditEventAccountCreationFailure = "account_creation_failure"
	auditEventAccountCreationDupe    = "account_creation_duplicate"
	auditEventWithdrawalSuccess      = "withdrawal_success"
	auditEventWithdrawalFailure      = "withdrawal_failure"
	auditEventStoreLoaded            = "store_loaded"
	auditEventSessionStarted         = "session_started"
	auditEventSessionRejected        = "session_rejected"
)

// AuditErrorCode is the stable, machine-readable error label carried in
// audit events.
type AuditErrorCode string

const (
	auditErrUserExists        AuditErrorCode = "user_already_exists"
	auditErrUserNotFound      AuditErrorCode = "user_not_found"
	auditErrAccountLocked     AuditErrorCode = "account_locked"
	auditErrPINMismatch       AuditErrorCode = "pin_mismatch"
	auditErrInvalidLength     AuditErrorCode = "invalid_length"
	auditErrWeakPIN           AuditErrorCode = "weak_pin"
	auditErrInvalidPIN        AuditErrorCode = "invalid_pin"
	auditErrUnstorable        AuditErrorCode = "unstorable_record"
	auditErrInvalidUsername   AuditErrorCode = "invalid_username"
	auditErrInvalidAmount     AuditErrorCode = "invalid_amount"
	auditErrInsufficientFunds AuditErrorCode = "insufficient_funds"
	auditErrReceiptsDisabled  AuditErrorCode = "receipts_disabled"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Username:  username,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrUserAlreadyExists):
		return auditErrUserExists
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrAccountLocked):
		return auditErrAccountLocked
	case errors.Is(err, ErrPINMismatch):
		return auditErrPINMismatch
	case errors.Is(err, ErrInvalidLength):
		return auditErrInvalidLength
	case errors.Is(err, ErrWeakPIN):
		return auditErrWeakPIN
	case errors.Is(err, ErrInvalidPIN):
		return auditErrInvalidPIN
	case errors.Is(err, ErrUnstorableRecord):
		return auditErrUnstorable
	case errors.Is(err, ErrInvalidUsername):
		return auditErrInvalidUsername
	case errors.Is(err, ErrInvalidAmount):
		return auditErrInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return auditErrInsufficientFunds
	case errors.Is(err, ErrSessionReceiptsDisabled):
		return auditErrReceiptsDisabled
	default:
		return auditErrInternal
	}
}
