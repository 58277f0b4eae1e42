package test

import (
	"context"
	"testing"
	"time"

	goCellAuth "github.com/MrEthical07/goCellAuth"
	"github.com/MrEthical07/goCellAuth/token"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goCellAuth.New

	var _ *goCellAuth.Authority
	var _ goCellAuth.Config
	var _ goCellAuth.ExchangeResult
	var _ goCellAuth.AuditEvent
	var _ goCellAuth.AuditSink
	var _ goCellAuth.MetricID
	var _ goCellAuth.MetricsSnapshot

	var _ error = goCellAuth.ErrAuthorityNotReady
	var _ error = goCellAuth.ErrTokenInvalid
	var _ error = goCellAuth.ErrTokenExpired
	var _ error = goCellAuth.ErrRefreshInvalid
	var _ error = goCellAuth.ErrSubjectRequired
	var _ error = goCellAuth.ErrLifespanInvalid
	var _ error = goCellAuth.ErrIDTokenInvalid
	var _ error = goCellAuth.ErrIDTokenNotConfigured
	var _ error = token.ErrParse

	var _ token.RefreshToken = token.ResidentRefreshToken{}
	var _ token.RefreshToken = token.VisitorRefreshToken{}
	var _ token.AccessToken = token.ResidentLocalAccessToken{}
	var _ token.AccessToken = token.VisitorLocalAccessToken{}
	var _ token.AccessToken = token.TransCellAccessToken{}
	var _ token.TokenStringer = token.ResidentRefreshToken{}
	var _ token.TokenStringer = token.VisitorRefreshToken{}
	var _ token.TokenStringer = token.ResidentLocalAccessToken{}
	var _ token.TokenStringer = token.VisitorLocalAccessToken{}

	var _ func(*goCellAuth.Authority, context.Context, string, string) (token.ResidentRefreshToken, error) = (*goCellAuth.Authority).IssueRefreshToken
	var _ func(*goCellAuth.Authority, context.Context, string) (token.Token, error) = (*goCellAuth.Authority).ParseToken
	var _ func(*goCellAuth.Authority, context.Context, string) (token.RefreshToken, error) = (*goCellAuth.Authority).ParseRefreshToken
	var _ func(*goCellAuth.Authority, context.Context, token.RefreshToken, string, []token.Role, string) (token.AccessToken, error) = (*goCellAuth.Authority).RefreshAccess
	var _ func(*goCellAuth.Authority, context.Context, token.RefreshToken) (token.RefreshToken, error) = (*goCellAuth.Authority).RefreshRefresh
	var _ func(*goCellAuth.Authority, context.Context, string, string, []token.Role, string) (*goCellAuth.ExchangeResult, error) = (*goCellAuth.Authority).Exchange
	var _ func(*goCellAuth.Authority, context.Context, string, string) (token.ResidentRefreshToken, error) = (*goCellAuth.Authority).ExchangeIDToken
	var _ func(*goCellAuth.Authority, token.Token, time.Time) bool = (*goCellAuth.Authority).ValidAt

	var _ func(string, string) (token.Token, error) = token.Parse
	var _ func(string, string) (token.RefreshToken, error) = token.ParseRefresh
}
