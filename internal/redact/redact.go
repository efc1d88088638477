// Package redact provides utilities for scrubbing sensitive information from
// strings before they are logged. Error messages can carry connection strings,
// credentials, tokens, or email addresses; passing them through this package
// prevents accidental leakage into log output.
package redact

import "regexp"

// Redaction placeholders.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// Precompiled patterns, applied in order.
var (
	// Database connection strings with embedded credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password fragments in messages or query strings.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{3,}`)

	// API keys, secrets, and generic tokens.
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|client[_-]?secret|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Standard three-part base64url JWT.
	jwtTokenRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// Email addresses.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	{dbConnRegex, RedactedCredentialPlaceholder},
	{passwordRegex, RedactedCredentialPlaceholder},
	{apiKeyRegex, RedactedKeyPlaceholder},
	{jwtTokenRegex, RedactedJWTPlaceholder},
	{emailRegex, RedactedEmailPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
