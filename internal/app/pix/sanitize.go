package pix

import (
	"net/url"
	"strings"
	"unicode"
)

const DefaultWebhookPath = "/api/wiinpay/webhook"

// Sanitize removes quotes, backticks and every whitespace rune from a URL-shaped value.
func Sanitize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	return strings.Map(func(r rune) rune {
		if r == '`' || r == '\'' || r == '"' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)
}

// EnsureWebhookPath sanitizes raw and, when it is an absolute URL with an empty
// or root path, sets the path to DefaultWebhookPath. Values that do not parse as
// absolute URLs are returned sanitized but otherwise untouched.
func EnsureWebhookPath(raw string) string {
	cleaned := Sanitize(raw)
	if cleaned == "" {
		return ""
	}

	u, err := url.Parse(cleaned)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cleaned
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = DefaultWebhookPath
		u.RawPath = ""
	}

	return u.String()
}
