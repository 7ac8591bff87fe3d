package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	offerserrors "voyago/internal/offers/errors"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

type mockOfferRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Offer, error)
	findAllFunc  func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error)
	countFunc    func(ctx context.Context, filter model.OfferFilter) (int64, error)
}

func (m *mockOfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockOfferRepository) FindAll(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error) {
	return m.findAllFunc(ctx, filter, limit, offset)
}

func (m *mockOfferRepository) Count(ctx context.Context, filter model.OfferFilter) (int64, error) {
	return m.countFunc(ctx, filter)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
}

func testOffer() *model.Offer {
	return &model.Offer{
		ID:          "offer-1",
		Title:       "Sunny Crete Escape",
		Destination: "Crete",
		Country:     "Greece",
		Price:       2499,
		AvailableDates: []time.Time{
			time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestGetByID(t *testing.T) {
	t.Run("returns offer when found", func(t *testing.T) {
		repo := &mockOfferRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
				if id != "offer-1" {
					t.Errorf("expected id offer-1, got %s", id)
				}
				return testOffer(), nil
			},
		}
		svc := NewOfferService(repo, testConfig())

		offer, err := svc.GetByID(context.Background(), "offer-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if offer.Destination != "Crete" {
			t.Errorf("expected destination Crete, got %s", offer.Destination)
		}
	})

	t.Run("maps missing offer to not found", func(t *testing.T) {
		repo := &mockOfferRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
				return nil, offerserrors.ErrNotFound
			},
		}
		svc := NewOfferService(repo, testConfig())

		_, err := svc.GetByID(context.Background(), "nope")
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeNotFound {
			t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		svc := NewOfferService(&mockOfferRepository{}, testConfig())

		_, err := svc.GetByID(context.Background(), "")
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
		}
	})
}

func TestList(t *testing.T) {
	t.Run("returns offers with total count", func(t *testing.T) {
		repo := &mockOfferRepository{
			findAllFunc: func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error) {
				return []*model.Offer{testOffer()}, nil
			},
			countFunc: func(ctx context.Context, filter model.OfferFilter) (int64, error) {
				return 7, nil
			},
		}
		svc := NewOfferService(repo, testConfig())

		offers, total, err := svc.List(context.Background(), model.OfferFilter{}, 10, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(offers) != 1 {
			t.Errorf("expected 1 offer, got %d", len(offers))
		}
		if total != 7 {
			t.Errorf("expected total 7, got %d", total)
		}
	})

	t.Run("normalizes destination before querying", func(t *testing.T) {
		var seenFilter model.OfferFilter
		repo := &mockOfferRepository{
			findAllFunc: func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error) {
				seenFilter = filter
				return nil, nil
			},
			countFunc: func(ctx context.Context, filter model.OfferFilter) (int64, error) {
				return 0, nil
			},
		}
		svc := NewOfferService(repo, testConfig())

		_, _, err := svc.List(context.Background(), model.OfferFilter{Destination: "  CRETE  "}, 10, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seenFilter.Destination != "crete" {
			t.Errorf("expected normalized destination crete, got %q", seenFilter.Destination)
		}
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repo := &mockOfferRepository{
			findAllFunc: func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, error) {
				return nil, errors.New("cursor error")
			},
			countFunc: func(ctx context.Context, filter model.OfferFilter) (int64, error) {
				return 0, nil
			},
		}
		svc := NewOfferService(repo, testConfig())

		_, _, err := svc.List(context.Background(), model.OfferFilter{}, 10, 0)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInternal {
			t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
		}
	})
}

func TestIsDateAvailable(t *testing.T) {
	repo := &mockOfferRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
			return testOffer(), nil
		},
	}
	svc := NewOfferService(repo, testConfig())

	t.Run("available date matches at day granularity", func(t *testing.T) {
		// Same calendar day, different time of day.
		date := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)
		available, err := svc.IsDateAvailable(context.Background(), "offer-1", date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !available {
			t.Error("expected date to be available")
		}
	})

	t.Run("unlisted date is not available", func(t *testing.T) {
		date := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
		available, err := svc.IsDateAvailable(context.Background(), "offer-1", date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if available {
			t.Error("expected date to be unavailable")
		}
	})

	t.Run("missing offer surfaces not found", func(t *testing.T) {
		repo := &mockOfferRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
				return nil, offerserrors.ErrNotFound
			},
		}
		svc := NewOfferService(repo, testConfig())

		_, err := svc.IsDateAvailable(context.Background(), "ghost", time.Now())
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeNotFound {
			t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
		}
	})
}
