package processors

import (
	"context"
	"fmt"

	"francoggm/wiinpay-pix-relay/internal/app/notify"
	"francoggm/wiinpay-pix-relay/internal/models"
)

type NotificationProcessor struct {
	publisher notify.Publisher
}

func NewNotificationProcessor(publisher notify.Publisher) *NotificationProcessor {
	return &NotificationProcessor{
		publisher: publisher,
	}
}

func (p *NotificationProcessor) ProcessEvent(ctx context.Context, event any) error {
	notification, ok := event.(*models.WebhookNotification)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	return p.publisher.Publish(ctx, notification)
}
