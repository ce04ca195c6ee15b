// Package events publishes domain events to the message broker. Events are
// notifications only: publishing failures are logged and never fail the
// request that produced them.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tuanphm/compliance-be/shared/rabbitmq"
)

// envelope is the wire shape of every event.
type envelope struct {
	Event      string         `json:"event"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Publisher emits domain events through an AMQP exchange.
type Publisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

// NewPublisher wraps an established broker client.
func NewPublisher(client *rabbitmq.Client, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}
}

// Emit publishes one event. Fire-and-forget: marshalling or broker errors
// are logged and swallowed.
func (p *Publisher) Emit(ctx context.Context, event string, payload map[string]any) {
	body, err := json.Marshal(envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	})
	if err != nil {
		p.logger.Error("Failed to encode event",
			slog.String("event", event),
			slog.Any("error", err),
		)
		return
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		p.logger.Error("Failed to publish event",
			slog.String("event", event),
			slog.Any("error", err),
		)
		return
	}

	p.logger.Debug("Event published", slog.String("event", event))
}
