package payment

import "fmt"

// TimeoutError is returned when WiinPay does not answer within the client timeout.
type TimeoutError struct {
	Timeout string
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("WiinPay request timeout after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError covers DNS, TLS and connection failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("WiinPay request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the response declared JSON but the body did not parse.
type MalformedResponseError struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("WiinPay returned malformed JSON (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
