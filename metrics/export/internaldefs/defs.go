package internaldefs

import (
	goCellAuth "github.com/MrEthical07/goCellAuth"
)

// CounterDef defines a public type used by goCellAuth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goCellAuth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goCellAuth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goCellAuth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the token authority.
var CounterDefs = []CounterDef{
	{ID: goCellAuth.MetricParseSuccess, Name: "cellauth_parse_success_total", Help: "Successfully parsed cell-local tokens."},
	{ID: goCellAuth.MetricParseFailure, Name: "cellauth_parse_failure_total", Help: "Rejected cell-local token parses."},
	{ID: goCellAuth.MetricRefreshIssued, Name: "cellauth_refresh_issued_total", Help: "Issued refresh tokens."},
	{ID: goCellAuth.MetricAccessIssued, Name: "cellauth_access_issued_total", Help: "Access tokens minted from refresh tokens."},
	{ID: goCellAuth.MetricRefreshRotated, Name: "cellauth_refresh_rotated_total", Help: "Rotated refresh tokens."},
	{ID: goCellAuth.MetricRefreshExpired, Name: "cellauth_refresh_expired_total", Help: "Refresh operations rejected because the refresh token expired."},
	{ID: goCellAuth.MetricIDTokenAccepted, Name: "cellauth_idtoken_accepted_total", Help: "Accepted OpenID Connect ID tokens."},
	{ID: goCellAuth.MetricIDTokenRejected, Name: "cellauth_idtoken_rejected_total", Help: "Rejected OpenID Connect ID tokens."},
}

// HistogramDefs is an exported constant or variable used by the token authority.
var HistogramDefs = []HistogramDef{
	{ID: goCellAuth.MetricVerifyLatency, Name: "cellauth_verify_latency_seconds", Help: "Token parse and ID token verification latency."},
}

// HistogramBounds is an exported constant or variable used by the token authority.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the token authority.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
