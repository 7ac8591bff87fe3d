package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	offerserrors "voyago/internal/offers/errors"
	"voyago/pkg/config"
	"voyago/pkg/model"
	"voyago/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Offers"
)

type OfferRepository interface {
	FindByID(ctx context.Context, id string) (*model.Offer, error)
	FindAll(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error)
	Count(ctx context.Context, filter model.OfferFilter) (int64, error)
}

type mongoOfferRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOfferRepository(cfg *config.Config) OfferRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOfferRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoOfferRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var offer model.Offer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, offerserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	return &offer, nil
}

func (r *mongoOfferRepository) FindAll(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildOfferFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []*model.Offer
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}

	return offers, nil
}

func (r *mongoOfferRepository) Count(ctx context.Context, filter model.OfferFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildOfferFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count offers: %w", err)
	}
	return count, nil
}

func buildOfferFilter(filter model.OfferFilter) bson.M {
	query := bson.M{}

	if filter.TripType != "" {
		query["trip_type"] = filter.TripType
	}
	if filter.Season != "" {
		query["season"] = filter.Season
	}
	if filter.LastMinute != nil {
		query["is_last_minute"] = *filter.LastMinute
	}
	if filter.Destination != "" {
		// Escaped before it reaches the regex engine; user input must
		// never become a pattern.
		pattern := sanitizer.EscapeRegex(filter.Destination)
		query["$or"] = []bson.M{
			{"destination": bson.M{"$regex": pattern, "$options": "i"}},
			{"country": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	return query
}
