// Package envconf loads configuration structs for goCellAuth binaries
// from an optional dotenv file and prefixed environment variables.
//
// The file uses dotted lowercase keys (token.access=30m). Environment
// variables use the PREFIX_UPPER_SNAKE form (CELLAUTH_TOKEN_ACCESS) and
// take precedence over the file. The core packages never read the
// environment; envconf exists for cmd/ and examples/ entry points.
package envconf
