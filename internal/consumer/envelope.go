package consumer

import (
	"context"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// Envelope carries a raw event through the pipeline together with the
// callbacks that settle its originating queue message
type Envelope struct {
	Event     *domain.RawEvent
	MessageID string
	ack       func(context.Context) error
	nack      func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(event *domain.RawEvent, messageID string, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Event:     event,
		MessageID: messageID,
		ack:       ack,
		nack:      nack,
	}
}

// Ack marks the message as stored
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack == nil {
		return nil
	}
	return e.ack(ctx)
}

// Nack leaves the message for redelivery
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack == nil {
		return nil
	}
	return e.nack(ctx)
}
