package pinvault

import "context"

// BeginSession mints a session receipt for a user who has just
// authenticated successfully. The receipt bounds the interactive session's
// lifetime only; it authorizes nothing by itself, and every
// balance-affecting operation still re-authenticates against the stored
// PIN.
func (e *Engine) BeginSession(ctx context.Context, record AccountRecord) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if e.receipts == nil {
		return "", ErrSessionReceiptsDisabled
	}

	receipt, err := e.receipts.Issue(record.Username)
	if err != nil {
		e.emitAudit(ctx, auditEventSessionRejected, false, record.Username, err, nil)
		return "", err
	}

	e.metricInc(MetricReceiptIssued)
	e.emitAudit(ctx, auditEventSessionStarted, true, record.Username, nil, nil)
	return receipt, nil
}

// ValidateSession checks a receipt and returns the username it was minted
// for. Expired receipts fail with [token.ErrExpired], everything else with
// [token.ErrInvalid].
func (e *Engine) ValidateSession(ctx context.Context, receipt string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if e.receipts == nil {
		return "", ErrSessionReceiptsDisabled
	}

	claims, err := e.receipts.Parse(receipt)
	if err != nil {
		e.metricInc(MetricReceiptRejected)
		e.emitAudit(ctx, auditEventSessionRejected, false, "", err, nil)
		return "", err
	}

	return claims.Username, nil
}
