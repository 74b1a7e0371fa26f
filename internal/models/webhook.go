package models

import "time"

type WebhookAck struct {
	OK bool `json:"ok"`
	// Status is nil when the callback carried no status key. A present null
	// status is echoed as null.
	Status *any `json:"status,omitempty"`
}

func NewWebhookAck(status any, present bool) WebhookAck {
	ack := WebhookAck{OK: true}
	if present {
		ack.Status = &status
	}
	return ack
}

// WebhookNotification is what gets fanned out after a webhook is acknowledged.
type WebhookNotification struct {
	RequestID  string    `json:"request_id"`
	ID         any       `json:"id"`
	StatusRaw  any       `json:"status_raw"`
	Status     any       `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}
