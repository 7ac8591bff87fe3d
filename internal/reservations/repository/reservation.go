package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	reserrors "voyago/internal/reservations/errors"
	"voyago/pkg/config"
	"voyago/pkg/model"
)

const (
	CollectionName = "Reservations"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error)
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// UpdateStatus moves the reservation from exactly `from` to `to`.
	// The filter on the current status makes the write a compare-and-
	// swap: if the document is no longer in `from`, ErrStateChanged is
	// returned and nothing is modified.
	UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) (*model.Reservation, error)
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}

	_, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("reservation %s already exists: %w", reservation.ID, err)
		}
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	return reservation, nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reservation model.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": to}}
	if from == model.StatusBlocked {
		// Leaving blocked always drops the hold deadline; every other
		// status must not carry one.
		update["$unset"] = bson.M{"expires_at": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reservation model.Reservation
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": from},
		update,
		opts,
	).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrStateChanged
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	return &reservation, nil
}
