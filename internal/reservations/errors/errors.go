package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	// ErrStateChanged means a conditional status update matched no
	// document: the reservation moved to another status between the
	// read and the write.
	ErrStateChanged = errors.New("reservation status changed concurrently")

	// ErrSlotLocked means another request holds the advisory lock for
	// the same (user, offer, date) slot.
	ErrSlotLocked = errors.New("reservation slot is locked by another request")
)
