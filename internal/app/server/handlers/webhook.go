package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"francoggm/wiinpay-pix-relay/internal/app/server/middleware"
	"francoggm/wiinpay-pix-relay/internal/models"

	"go.uber.org/zap"
)

// Webhook acknowledges every WiinPay callback with 200, whatever its shape.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	decoded, err := readJSON(r)
	if err != nil {
		h.logger.Debug("wiinpay_webhook_unparsed_body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	payload, ok := decoded.(map[string]any)
	if !ok {
		payload = map[string]any{}
	}

	statusRaw, hasStatus := payload["status"]
	status := statusRaw
	if s, ok := statusRaw.(string); ok {
		status = strings.ToLower(s)
	}

	h.logger.Info("wiinpay_webhook_received",
		zap.String("request_id", requestID),
		zap.Any("status_raw", statusRaw),
		zap.Any("status", status),
		zap.Any("id", payload["id"]),
	)

	h.enqueueNotification(&models.WebhookNotification{
		RequestID:  requestID,
		ID:         payload["id"],
		StatusRaw:  statusRaw,
		Status:     status,
		ReceivedAt: time.Now().UTC(),
	})

	writeJSON(w, http.StatusOK, models.NewWebhookAck(status, hasStatus))
}

// enqueueNotification never blocks the webhook response.
func (h *Handlers) enqueueNotification(n *models.WebhookNotification) {
	if h.notificationsCh == nil {
		return
	}

	select {
	case h.notificationsCh <- n:
	default:
		h.logger.Warn("wiinpay_webhook_dropped",
			zap.String("request_id", n.RequestID),
			zap.String("id", fmt.Sprint(n.ID)),
		)
	}
}
