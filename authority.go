package goCellAuth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrEthical07/goCellAuth/idtoken"
	"github.com/MrEthical07/goCellAuth/token"
)

// Authority defines a public type used by goCellAuth APIs.
//
// Authority instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Authority struct {
	config   Config
	clock    func() time.Time
	logger   *slog.Logger
	audit    *auditDispatcher
	metrics  *Metrics
	idTokens *idtoken.Manager
}

// CellURL describes the cellurl operation and its observable behavior.
//
// CellURL may return an error when input validation, dependency calls, or security checks fail.
// CellURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) CellURL() string {
	if a == nil {
		return ""
	}
	return a.config.CellURL
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) Close() {
	if a == nil {
		return
	}
	if a.audit != nil {
		a.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) AuditDropped() uint64 {
	if a == nil || a.audit == nil {
		return 0
	}
	return a.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) MetricsSnapshot() MetricsSnapshot {
	if a == nil || a.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return a.metrics.Snapshot()
}

func (a *Authority) metricInc(id MetricID) {
	if a == nil || a.metrics == nil {
		return
	}
	a.metrics.Inc(id)
}

func (a *Authority) metricObserve(id MetricID, d time.Duration) {
	if a == nil || a.metrics == nil {
		return
	}
	a.metrics.Observe(id, d)
}

func (a *Authority) logDebug(msg string, args ...any) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Debug(msg, args...)
}

// refreshTokenID extracts the dedup/logging key when the kind carries one.
func refreshTokenID(t token.Token) string {
	if rt, ok := t.(token.RefreshToken); ok {
		return rt.ID()
	}
	return ""
}

// IssueRefreshToken describes the issuerefreshtoken operation and its observable behavior.
//
// IssueRefreshToken may return an error when input validation, dependency calls, or security checks fail.
// IssueRefreshToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) IssueRefreshToken(ctx context.Context, subject, schema string) (token.ResidentRefreshToken, error) {
	if a == nil {
		return token.ResidentRefreshToken{}, ErrAuthorityNotReady
	}
	if subject == "" {
		a.emitAudit(ctx, auditEventRefreshIssued, false, "", schema, "", "", ErrSubjectRequired, nil)
		return token.ResidentRefreshToken{}, ErrSubjectRequired
	}

	now := a.clock()
	minted := token.NewResidentRefreshToken(
		now.UnixMilli(),
		a.config.Token.RefreshTokenLifespan.Milliseconds(),
		a.config.CellURL,
		subject,
		schema,
	)

	a.metricInc(MetricRefreshIssued)
	a.emitAudit(ctx, auditEventRefreshIssued, true, subject, schema, "", minted.ID(), nil, nil)
	a.logDebug("refresh token issued", "subject", subject, "token_id", minted.ID())

	return minted, nil
}

// ParseToken describes the parsetoken operation and its observable behavior.
//
// ParseToken may return an error when input validation, dependency calls, or security checks fail.
// ParseToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) ParseToken(ctx context.Context, tokenString string) (token.Token, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	if a.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { a.metrics.Observe(MetricVerifyLatency, time.Since(start)) }()
	}

	parsed, err := token.Parse(tokenString, a.config.CellURL)
	if err != nil {
		a.metricInc(MetricParseFailure)
		wrapped := fmt.Errorf("%w: %w", ErrTokenInvalid, err)
		a.emitAudit(ctx, auditEventTokenParseRejected, false, "", "", "", "", wrapped, nil)
		return nil, wrapped
	}

	a.metricInc(MetricParseSuccess)
	a.emitAudit(ctx, auditEventTokenParsed, true, parsed.Subject(), parsed.Schema(), "", refreshTokenID(parsed), nil, nil)

	return parsed, nil
}

// ParseRefreshToken describes the parserefreshtoken operation and its observable behavior.
//
// ParseRefreshToken may return an error when input validation, dependency calls, or security checks fail.
// ParseRefreshToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) ParseRefreshToken(ctx context.Context, tokenString string) (token.RefreshToken, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	if a.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { a.metrics.Observe(MetricVerifyLatency, time.Since(start)) }()
	}

	parsed, err := token.ParseRefresh(tokenString, a.config.CellURL)
	if err != nil {
		a.metricInc(MetricParseFailure)
		wrapped := fmt.Errorf("%w: %w", ErrRefreshInvalid, err)
		a.emitAudit(ctx, auditEventTokenParseRejected, false, "", "", "", "", wrapped, nil)
		return nil, wrapped
	}

	a.metricInc(MetricParseSuccess)
	a.emitAudit(ctx, auditEventTokenParsed, true, parsed.Subject(), parsed.Schema(), "", parsed.ID(), nil, nil)

	return parsed, nil
}

// RefreshAccess describes the refreshaccess operation and its observable behavior.
//
// RefreshAccess may return an error when input validation, dependency calls, or security checks fail.
// RefreshAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) RefreshAccess(ctx context.Context, refresh token.RefreshToken, target string, roles []token.Role, schema string) (token.AccessToken, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	return a.RefreshAccessWithLifespan(ctx, refresh, target, roles, schema, a.config.Token.AccessTokenLifespan)
}

// RefreshAccessWithLifespan describes the refreshaccesswithlifespan operation and its observable behavior.
//
// RefreshAccessWithLifespan may return an error when input validation, dependency calls, or security checks fail.
// RefreshAccessWithLifespan does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) RefreshAccessWithLifespan(ctx context.Context, refresh token.RefreshToken, target string, roles []token.Role, schema string, lifespan time.Duration) (token.AccessToken, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	if refresh == nil {
		return nil, ErrRefreshInvalid
	}
	if lifespan <= 0 {
		return nil, ErrLifespanInvalid
	}

	now := a.clock()
	if !refresh.ValidAt(now.UnixMilli()) {
		a.metricInc(MetricRefreshExpired)
		a.emitAudit(ctx, auditEventRefreshExpired, false, refresh.Subject(), refresh.Schema(), target, refresh.ID(), ErrTokenExpired, nil)
		return nil, ErrTokenExpired
	}

	access := refresh.RefreshAccessToken(now.UnixMilli(), lifespan.Milliseconds(), target, a.config.CellURL, roles, schema)

	a.metricInc(MetricAccessIssued)
	a.emitAudit(ctx, auditEventAccessIssued, true, access.Subject(), access.Schema(), access.Target(), refresh.ID(), nil, nil)
	a.logDebug("access token issued", "subject", access.Subject(), "target", access.Target())

	return access, nil
}

// RefreshRefresh describes the refreshrefresh operation and its observable behavior.
//
// RefreshRefresh may return an error when input validation, dependency calls, or security checks fail.
// RefreshRefresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) RefreshRefresh(ctx context.Context, refresh token.RefreshToken) (token.RefreshToken, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	return a.RefreshRefreshWithLifespan(ctx, refresh, a.config.Token.RefreshTokenLifespan)
}

// RefreshRefreshWithLifespan describes the refreshrefreshwithlifespan operation and its observable behavior.
//
// RefreshRefreshWithLifespan may return an error when input validation, dependency calls, or security checks fail.
// RefreshRefreshWithLifespan does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) RefreshRefreshWithLifespan(ctx context.Context, refresh token.RefreshToken, lifespan time.Duration) (token.RefreshToken, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}
	if refresh == nil {
		return nil, ErrRefreshInvalid
	}
	if lifespan <= 0 {
		return nil, ErrLifespanInvalid
	}

	now := a.clock()
	if !refresh.ValidAt(now.UnixMilli()) {
		a.metricInc(MetricRefreshExpired)
		a.emitAudit(ctx, auditEventRefreshExpired, false, refresh.Subject(), refresh.Schema(), "", refresh.ID(), ErrTokenExpired, nil)
		return nil, ErrTokenExpired
	}

	next := refresh.RefreshRefreshToken(now.UnixMilli(), lifespan.Milliseconds())
	previousID := refresh.ID()

	a.metricInc(MetricRefreshRotated)
	a.emitAudit(ctx, auditEventRefreshRotated, true, next.Subject(), next.Schema(), "", next.ID(), nil, func() map[string]string {
		return map[string]string{"previous_id": previousID}
	})
	a.logDebug("refresh token rotated", "subject", next.Subject(), "token_id", next.ID())

	return next, nil
}

// ExchangeIDToken describes the exchangeidtoken operation and its observable behavior.
//
// ExchangeIDToken may return an error when input validation, dependency calls, or security checks fail.
// ExchangeIDToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) ExchangeIDToken(ctx context.Context, rawIDToken, schema string) (token.ResidentRefreshToken, error) {
	if a == nil {
		return token.ResidentRefreshToken{}, ErrAuthorityNotReady
	}
	if a.idTokens == nil {
		return token.ResidentRefreshToken{}, ErrIDTokenNotConfigured
	}

	start := time.Now()
	claims, err := a.idTokens.Verify(rawIDToken)
	a.metricObserve(MetricVerifyLatency, time.Since(start))
	if err != nil {
		a.metricInc(MetricIDTokenRejected)
		wrapped := fmt.Errorf("%w: %w", ErrIDTokenInvalid, err)
		a.emitAudit(ctx, auditEventIDTokenRejected, false, "", schema, "", "", wrapped, nil)
		return token.ResidentRefreshToken{}, wrapped
	}

	now := a.clock()
	minted := token.NewResidentRefreshToken(
		now.UnixMilli(),
		a.config.Token.RefreshTokenLifespan.Milliseconds(),
		a.config.CellURL,
		claims.Subject,
		schema,
	)

	idp := claims.Issuer
	a.metricInc(MetricIDTokenAccepted)
	a.emitAudit(ctx, auditEventIDTokenAccepted, true, claims.Subject, schema, "", minted.ID(), nil, func() map[string]string {
		return map[string]string{"idp": idp}
	})
	a.logDebug("id token accepted", "subject", claims.Subject, "idp", idp)

	return minted, nil
}

// Exchange describes the exchange operation and its observable behavior.
//
// Exchange may return an error when input validation, dependency calls, or security checks fail.
// Exchange does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) Exchange(ctx context.Context, refreshTokenString, target string, roles []token.Role, schema string) (*ExchangeResult, error) {
	if a == nil {
		return nil, ErrAuthorityNotReady
	}

	refresh, err := a.ParseRefreshToken(ctx, refreshTokenString)
	if err != nil {
		return nil, err
	}

	access, err := a.RefreshAccessWithLifespan(ctx, refresh, target, roles, schema, a.config.Token.AccessTokenLifespan)
	if err != nil {
		return nil, err
	}

	next, err := a.RefreshRefreshWithLifespan(ctx, refresh, a.config.Token.RefreshTokenLifespan)
	if err != nil {
		return nil, err
	}

	return &ExchangeResult{
		AccessToken:        access,
		RefreshToken:       next,
		AccessTokenString:  wireForm(access),
		RefreshTokenString: wireForm(next),
		AccessExpiresAt:    access.ExpiresAt(),
		RefreshExpiresAt:   next.ExpiresAt(),
	}, nil
}

// ValidAt describes the validat operation and its observable behavior.
//
// ValidAt may return an error when input validation, dependency calls, or security checks fail.
// ValidAt does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) ValidAt(tok token.Token, at time.Time) bool {
	return tok != nil && tok.ValidAt(at.UnixMilli())
}

// Expired describes the expired operation and its observable behavior.
//
// Expired may return an error when input validation, dependency calls, or security checks fail.
// Expired does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) Expired(tok token.Token) bool {
	if a == nil || tok == nil {
		return true
	}
	return !tok.ValidAt(a.clock().UnixMilli())
}
