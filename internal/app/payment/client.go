package payment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout = 30 * time.Second
	userAgent      = "wiinpay-pix-relay/1.0 (+https://localhost)"
)

// Response is a WiinPay answer. Data holds the decoded JSON value when the
// response declared application/json, otherwise the raw body as a string.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Data       any
	IsJSON     bool
}

type Client struct {
	timeout time.Duration
	client  *fasthttp.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		timeout: timeout,
		client: &fasthttp.Client{
			Name:                     userAgent,
			NoDefaultUserAgentHeader: true,
		},
	}
}

// Post sends body as JSON to url. Exactly one attempt is made.
func (c *Client) Post(ctx context.Context, url string, body any) (*Response, error) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal WiinPay request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(url)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.SetUserAgent(userAgent)
	req.SetBody(payload)

	timeout := c.effectiveTimeout(ctx)
	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Timeout: timeout.String(), Err: err}
		}
		return nil, &TransportError{Err: err}
	}

	result := &Response{
		StatusCode: resp.StatusCode(),
		Headers:    make(map[string]string),
	}
	resp.Header.VisitAll(func(key, value []byte) {
		result.Headers[strings.ToLower(string(key))] = string(value)
	})

	// resp is returned to the pool on exit, so the body must be copied out.
	raw := append([]byte(nil), resp.Body()...)

	if !strings.Contains(strings.ToLower(string(resp.Header.ContentType())), "application/json") {
		result.Data = string(raw)
		return result, nil
	}

	var data any
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, &MalformedResponseError{StatusCode: result.StatusCode, Err: err}
	}

	result.Data = data
	result.IsJSON = true
	return result, nil
}

// effectiveTimeout never exceeds the client timeout but honours an earlier ctx deadline.
func (c *Client) effectiveTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return c.timeout
	}

	if remaining := time.Until(deadline); remaining < c.timeout {
		if remaining <= 0 {
			return time.Nanosecond
		}
		return remaining
	}

	return c.timeout
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
