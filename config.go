package goCellAuth

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by goCellAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// CellURL is the canonical URL of the cell this authority issues and
	// accepts tokens for. Required; normalized by Build to carry a trailing
	// slash.
	CellURL string

	Token   TokenConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goCellAuth APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// AccessTokenLifespan is the validity window applied when a refresh
	// operation does not ask for an explicit one.
	AccessTokenLifespan time.Duration
	// RefreshTokenLifespan is the validity window for newly minted and
	// rotated refresh tokens.
	RefreshTokenLifespan time.Duration
}

// AuditConfig defines a public type used by goCellAuth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goCellAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULTS
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			AccessTokenLifespan:  1 * time.Hour,
			RefreshTokenLifespan: 24 * time.Hour,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// HighSecurityConfig describes the highsecurityconfig operation and its observable behavior.
//
// HighSecurityConfig may return an error when input validation, dependency calls, or security checks fail.
// HighSecurityConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func HighSecurityConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.AccessTokenLifespan = 15 * time.Minute
	cfg.Token.RefreshTokenLifespan = 12 * time.Hour
	cfg.Audit.Enabled = true
	// Backpressure blocks instead of dropping events.
	cfg.Audit.DropIfFull = false
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

// HighThroughputConfig describes the highthroughputconfig operation and its observable behavior.
//
// HighThroughputConfig may return an error when input validation, dependency calls, or security checks fail.
// HighThroughputConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func HighThroughputConfig() Config {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = false
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if _, err := normalizeCellURL(c.CellURL); err != nil {
		return err
	}

	if c.Token.AccessTokenLifespan <= 0 {
		return errors.New("Token AccessTokenLifespan must be > 0")
	}
	if c.Token.RefreshTokenLifespan <= 0 {
		return errors.New("Token RefreshTokenLifespan must be > 0")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}

// normalizeCellURL checks that raw is an absolute http(s) URL with a host and
// returns it with a trailing slash. The returned value is what tokens embed
// and what Parse pins against, so the normalization must be stable.
func normalizeCellURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("CellURL must not be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.New("CellURL must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("CellURL must use http or https")
	}
	if u.Host == "" {
		return "", errors.New("CellURL must have a host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", errors.New("CellURL must not carry a query or fragment")
	}

	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw, nil
}
