package goCellAuth

import "errors"

var (
	// ErrAuthorityNotReady is an exported constant or variable used by the token authority.
	ErrAuthorityNotReady = errors.New("authority not initialized")
	// ErrTokenInvalid is an exported constant or variable used by the token authority.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is an exported constant or variable used by the token authority.
	ErrTokenExpired = errors.New("token expired")
	// ErrRefreshInvalid is an exported constant or variable used by the token authority.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrSubjectRequired is an exported constant or variable used by the token authority.
	ErrSubjectRequired = errors.New("subject required")
	// ErrLifespanInvalid is an exported constant or variable used by the token authority.
	ErrLifespanInvalid = errors.New("lifespan must be positive")
	// ErrIDTokenInvalid is an exported constant or variable used by the token authority.
	ErrIDTokenInvalid = errors.New("invalid id token")
	// ErrIDTokenNotConfigured is an exported constant or variable used by the token authority.
	ErrIDTokenNotConfigured = errors.New("id token acceptance not configured")
)
