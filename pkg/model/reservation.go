package model

import "time"

type ReservationStatus string

const (
	StatusBlocked   ReservationStatus = "blocked"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusExpired   ReservationStatus = "expired"
)

// Terminal reports whether no further transition is allowed from s.
// A confirmed reservation is not terminal: it may still be cancelled.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo encodes the reservation state machine:
//
//	blocked   -> confirmed | expired | cancelled
//	confirmed -> cancelled
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusBlocked:
		return next == StatusConfirmed || next == StatusExpired || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Reservation is a ledger record for a single booking of an offer.
// TotalPrice is frozen at creation time and never recomputed when
// the offer's price changes later. ExpiresAt is set iff the
// reservation is in blocked status.
type Reservation struct {
	ID            string            `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string            `json:"user_id" bson:"user_id" validate:"required"`
	OfferID       string            `json:"offer_id" bson:"offer_id" validate:"required"`
	Status        ReservationStatus `json:"status" bson:"status" validate:"required,oneof=blocked confirmed cancelled expired"`
	Guests        int               `json:"guests" bson:"guests" validate:"required,min=1,max=8"`
	TotalPrice    int64             `json:"total_price" bson:"total_price" validate:"required,min=1"`
	DepartureDate time.Time         `json:"departure_date" bson:"departure_date" validate:"required"`
	ExpiresAt     *time.Time        `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
}

// ReservationRequest is the presentation-layer input for creating a
// block or a confirmed reservation. The user identity is resolved
// separately by the authentication collaborator and never travels in
// the body. The guest range is a pricing rule, not a shape rule, so
// Guests carries no bounds here.
type ReservationRequest struct {
	OfferID       string    `json:"offer_id" validate:"required"`
	DepartureDate time.Time `json:"departure_date" validate:"required"`
	Guests        int       `json:"guests"`
}
