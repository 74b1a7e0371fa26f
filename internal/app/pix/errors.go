package pix

import "fmt"

// ConfigurationError is a server-side misconfiguration (missing API key, bad webhook URL).
type ConfigurationError struct {
	Message string
	Details string
}

func (e *ConfigurationError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// ValidationError is a client input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError carries a non-2xx WiinPay answer verbatim.
type UpstreamError struct {
	StatusCode int
	Body       any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("WiinPay answered with status %d", e.StatusCode)
}
