package model

import "time"

// ReservationLock is an advisory lock preventing two concurrent
// requests from creating the same reservation slot. The _id encodes
// the (user, offer, date) coordinates; a TTL index on expires_at
// reaps stale locks left behind by crashed requests.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
