package events

import (
	"context"
	"time"

	"voyago/pkg/kafka"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

// Event types emitted on the reservation lifecycle topic.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationExpired   = "reservation.expired"

	schemaVersion = "1.0"
	source        = "reservations-service"
)

// ReservationEvent is the payload published for every lifecycle
// transition. It is a snapshot of the ledger record after the
// transition took effect.
type ReservationEvent struct {
	EventType     string                  `json:"event_type"`
	ReservationID string                  `json:"reservation_id"`
	UserID        string                  `json:"user_id"`
	OfferID       string                  `json:"offer_id"`
	Status        model.ReservationStatus `json:"status"`
	Guests        int                     `json:"guests"`
	TotalPrice    int64                   `json:"total_price"`
	DepartureDate time.Time               `json:"departure_date"`
	ExpiresAt     *time.Time              `json:"expires_at,omitempty"`
	OccurredAt    time.Time               `json:"occurred_at"`
}

// Publisher emits reservation lifecycle events. Publishing is
// best-effort: the ledger write is the source of truth and a failed
// publish never rolls back a transition.
type Publisher interface {
	Publish(ctx context.Context, eventType string, reservation *model.Reservation)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	event := ReservationEvent{
		EventType:     eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		OfferID:       reservation.OfferID,
		Status:        reservation.Status,
		Guests:        reservation.Guests,
		TotalPrice:    reservation.TotalPrice,
		DepartureDate: reservation.DepartureDate,
		ExpiresAt:     reservation.ExpiresAt,
		OccurredAt:    time.Now(),
	}

	// Keyed by reservation ID so all events for one reservation land
	// on the same partition, in order.
	msg := kafka.NewMessage().
		WithKey(reservation.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
		return
	}

	p.log.Debug("Published reservation event",
		"event_type", eventType,
		"reservation_id", reservation.ID,
	)
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops all events. Used
// when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Reservation) {}
