package service

import (
	"context"
	"errors"
	"sync"
	"time"

	offerserrors "voyago/internal/offers/errors"
	"voyago/internal/offers/repository"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
	"voyago/pkg/sanitizer"
)

// OfferService is the read model over the published offer catalog.
// It also serves as the availability index the reservation ledger
// consults before accepting a departure date.
type OfferService interface {
	GetByID(ctx context.Context, id string) (*model.Offer, error)
	List(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, int64, error)
	IsDateAvailable(ctx context.Context, offerID string, date time.Time) (bool, error)
}

type offerService struct {
	repo repository.OfferRepository
	cfg  *config.Config
}

func NewOfferService(repo repository.OfferRepository, cfg *config.Config) OfferService {
	return &offerService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *offerService) GetByID(ctx context.Context, id string) (*model.Offer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Offer ID cannot be empty")
	}

	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, offerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Offer", id)
		}
		return nil, apperrors.Internal("Failed to retrieve offer", err)
	}

	return offer, nil
}

func (s *offerService) List(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, int64, error) {
	filter.Destination = sanitizer.NormalizeDestination(filter.Destination)

	var count int64
	var offers []*model.Offer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count offers", "error", errCount)
			errCount = apperrors.Internal("Failed to count offers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		offers, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list offers", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve offers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return offers, count, nil
}

// IsDateAvailable reports whether the date is one of the offer's
// bookable departure dates. Capacity per date is currently
// unlimited, so set membership is the whole check.
func (s *offerService) IsDateAvailable(ctx context.Context, offerID string, date time.Time) (bool, error) {
	offer, err := s.GetByID(ctx, offerID)
	if err != nil {
		return false, err
	}
	return offer.HasDepartureDate(date), nil
}
