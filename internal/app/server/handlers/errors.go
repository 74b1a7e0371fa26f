package handlers

import (
	"errors"

	"francoggm/wiinpay-pix-relay/internal/app/payment"
)

func errorType(err error) string {
	var (
		timeoutErr   *payment.TimeoutError
		transportErr *payment.TransportError
		malformedErr *payment.MalformedResponseError
	)

	switch {
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &malformedErr):
		return "malformed_response"
	}

	return "internal"
}
