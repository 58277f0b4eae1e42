package goCellAuth

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goCellAuth/token"
)

const (
	auditEventTokenParsed        = "token_parsed"
	auditEventTokenParseRejected = "token_parse_rejected"
	auditEventRefreshIssued      = "refresh_issued"
	auditEventAccessIssued       = "access_issued"
	auditEventRefreshRotated     = "refresh_rotated"
	auditEventRefreshExpired     = "refresh_expired"
	auditEventIDTokenAccepted    = "idtoken_accepted"
	auditEventIDTokenRejected    = "idtoken_rejected"
)

// AuditErrorCode defines a public type used by goCellAuth APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrParseFailed    AuditErrorCode = "parse_failed"
	auditErrTokenExpired   AuditErrorCode = "token_expired"
	auditErrIDTokenInvalid AuditErrorCode = "idtoken_invalid"
	auditErrNotConfigured  AuditErrorCode = "not_configured"
	auditErrInvalidInput   AuditErrorCode = "invalid_input"
	auditErrInternal       AuditErrorCode = "internal_error"
)

func (a *Authority) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	subject string,
	schema string,
	target string,
	tokenID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if a == nil || a.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Cell:      a.config.CellURL,
		Subject:   subject,
		Schema:    schema,
		Target:    target,
		TokenID:   tokenID,
		IP:        clientIPFromContext(ctx),
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	a.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, token.ErrParse),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrRefreshInvalid):
		return auditErrParseFailed
	case errors.Is(err, ErrTokenExpired):
		return auditErrTokenExpired
	case errors.Is(err, ErrIDTokenInvalid):
		return auditErrIDTokenInvalid
	case errors.Is(err, ErrIDTokenNotConfigured):
		return auditErrNotConfigured
	case errors.Is(err, ErrSubjectRequired),
		errors.Is(err, ErrLifespanInvalid):
		return auditErrInvalidInput
	default:
		return auditErrInternal
	}
}
