package notify

import (
	"context"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
)

type MessageType string

const (
	MessageRegistrationSubmitted MessageType = "registration.submitted"
	MessageStatusChanged         MessageType = "registration.status_changed"
)

type Message struct {
	Type           MessageType         `json:"type"`
	RegistrationID string              `json:"registration_id"`
	UserEmail      string              `json:"user_email"`
	UserName       string              `json:"user_name"`
	Status         model.PaymentStatus `json:"status"`
	Events         []string            `json:"events"`
	Amount         int                 `json:"amount"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

func NewMessage(t MessageType, reg *model.Registration, now time.Time) *Message {
	events := make([]string, 0, len(reg.Events))
	for _, e := range reg.Events {
		events = append(events, e.EventName)
	}
	return &Message{
		Type:           t,
		RegistrationID: reg.ID,
		UserEmail:      reg.UserEmail,
		UserName:       reg.UserName,
		Status:         reg.PaymentStatus,
		Events:         events,
		Amount:         reg.Amount,
		OccurredAt:     now,
	}
}

type Publisher interface {
	Publish(ctx context.Context, msg *Message) error
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, *Message) error {
	return nil
}
