package logger

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Sensitive data patterns that should be redacted from logs
var sensitivePatterns = []*regexp.Regexp{
	// OAuth tokens and authorization headers
	regexp.MustCompile(`(?i)(access_token|refresh_token)["':=\s]*["']?([A-Za-z0-9\-._~+/]+=*)`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),

	// Client secrets
	regexp.MustCompile(`(?i)(client_secret)["':=\s]*["']?([A-Za-z0-9\-._~+/]{8,})`),
}

var urlSecretParams = regexp.MustCompile(`([?&](?:code|token|access_token|refresh_token|client_secret|key|secret)=)[^&\s"']*`)

// sensitiveKeys are attribute keys whose values are never written
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"client_secret": true,
	"code":          true,
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[REDACTED]")
	}
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(Redact(a.Value.String()))
	case slog.KindAny:
		// Errors from the oauth2 and googleapi packages quote response bodies
		switch v := a.Value.Any().(type) {
		case error:
			a.Value = slog.StringValue(Redact(v.Error()))
		case fmt.Stringer:
			a.Value = slog.StringValue(Redact(v.String()))
		}
	}
	return a
}

// Redact removes tokens, secrets and authorization codes from a string
func Redact(input string) string {
	result := input

	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			submatches := pattern.FindStringSubmatch(match)
			if len(submatches) >= 3 {
				return strings.TrimSuffix(match, submatches[2]) + "[REDACTED]"
			}
			return "[REDACTED]"
		})
	}

	return RedactURL(result)
}

// RedactURL masks secret query parameters of every URL found in s
func RedactURL(s string) string {
	if !strings.Contains(s, "?") {
		return s
	}
	return urlSecretParams.ReplaceAllString(s, "${1}[REDACTED]")
}
