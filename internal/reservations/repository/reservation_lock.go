package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	reserrors "voyago/internal/reservations/errors"
	"voyago/pkg/config"
	"voyago/pkg/model"
)

const (
	LockCollectionName = "ReservationLocks"
)

// ReservationLockRepository guards the reservation create path: a
// unique _id per (user, offer, date) slot plus a TTL index on
// expires_at gives short-lived mutual exclusion without transactions.
type ReservationLockRepository interface {
	Acquire(ctx context.Context, userID, offerID string, departureDate time.Time) (string, error)
	Release(ctx context.Context, lockID string) error
}

type mongoReservationLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationLockRepository(cfg *config.Config) ReservationLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// LockID derives the lock document _id from the slot coordinates.
// Dates collapse to the calendar day so two requests for the same
// day always contend for the same lock.
func LockID(userID, offerID string, departureDate time.Time) string {
	return fmt.Sprintf("%s:%s:%s", userID, offerID, departureDate.UTC().Format(time.DateOnly))
}

func (r *mongoReservationLockRepository) Acquire(ctx context.Context, userID, offerID string, departureDate time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now()
	lock := model.ReservationLock{
		ID:        LockID(userID, offerID, departureDate),
		ExpiresAt: now.Add(r.cfg.SlotLockTTL),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", reserrors.ErrSlotLocked
		}
		return "", fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	return lock.ID, nil
}

func (r *mongoReservationLockRepository) Release(ctx context.Context, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	if err != nil {
		// The TTL index will reap it; log-and-continue at the caller.
		return fmt.Errorf("failed to release reservation lock: %w", err)
	}
	return nil
}
