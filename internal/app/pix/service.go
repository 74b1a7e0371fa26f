package pix

import (
	"context"
	"errors"
	"sort"
	"time"

	"francoggm/wiinpay-pix-relay/internal/app/payment"
	"francoggm/wiinpay-pix-relay/internal/config"
	"francoggm/wiinpay-pix-relay/internal/metrics"
	"francoggm/wiinpay-pix-relay/internal/models"

	"go.uber.org/zap"
)

type ProviderClient interface {
	Post(ctx context.Context, url string, body any) (*payment.Response, error)
}

type Service struct {
	cfg     *config.Config
	client  ProviderClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewService(cfg *config.Config, client ProviderClient, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// CreatePayment validates body, resolves the webhook URL, calls WiinPay once
// and returns the normalized response body.
func (s *Service) CreatePayment(ctx context.Context, requestID string, body map[string]any) (any, error) {
	req, err := ValidateCreateRequest(s.cfg.WiinPay.APIKey, body)
	if err != nil {
		return nil, err
	}

	webhookURL, err := ResolveWebhookURL(s.cfg.Webhook)
	if err != nil {
		return nil, err
	}

	outbound := models.NewOutboundProviderRequest(s.cfg.WiinPay.APIKey, webhookURL, req)

	s.logger.Info("wiinpay_create_request",
		zap.String("request_id", requestID),
		zap.Float64("value", req.Value),
		zap.String("webhook_url", webhookURL),
	)

	startedAt := time.Now()
	resp, err := s.client.Post(ctx, s.cfg.WiinPay.APIURL, outbound)
	elapsed := time.Since(startedAt)

	if err != nil {
		s.metrics.ObserveProviderCall(outcomeOf(err), elapsed)
		s.logger.Warn("wiinpay_create_response",
			zap.String("request_id", requestID),
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("wiinpay_create_response",
		zap.String("request_id", requestID),
		zap.Int("wiinpay_status", resp.StatusCode),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.metrics.ObserveProviderCall(metrics.OutcomeUpstreamError, elapsed)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: resp.Data}
	}
	s.metrics.ObserveProviderCall(metrics.OutcomeSuccess, elapsed)

	normalized := NormalizeResponse(resp.Data)
	s.logPayloadShape(requestID, normalized)

	return normalized, nil
}

// logPayloadShape logs keys and canonical field lengths, never the values.
func (s *Service) logPayloadShape(requestID string, normalized any) {
	keys := []string{}
	var qrLen, qrBase64Len int

	if obj, ok := normalized.(map[string]any); ok {
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if v, ok := obj[QRCodeKey].(string); ok {
			qrLen = len(v)
		}
		if v, ok := obj[QRCodeBase64Key].(string); ok {
			qrBase64Len = len(v)
		}
	}

	s.logger.Info("wiinpay_create_response_payload",
		zap.String("request_id", requestID),
		zap.Strings("keys", keys),
		zap.Int("qr_code_length", qrLen),
		zap.Int("qr_code_base64_length", qrBase64Len),
	)
}

func outcomeOf(err error) string {
	var (
		timeoutErr   *payment.TimeoutError
		malformedErr *payment.MalformedResponseError
	)

	switch {
	case errors.As(err, &timeoutErr):
		return metrics.OutcomeTimeout
	case errors.As(err, &malformedErr):
		return metrics.OutcomeMalformedResponse
	}

	return metrics.OutcomeTransportError
}
