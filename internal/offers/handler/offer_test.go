package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "voyago/pkg/errors"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

type mockOfferService struct {
	getByIDFunc         func(ctx context.Context, id string) (*model.Offer, error)
	listFunc            func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, int64, error)
	isDateAvailableFunc func(ctx context.Context, offerID string, date time.Time) (bool, error)
}

func (m *mockOfferService) GetByID(ctx context.Context, id string) (*model.Offer, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOfferService) List(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, int64, error) {
	return m.listFunc(ctx, filter, limit, offset)
}

func (m *mockOfferService) IsDateAvailable(ctx context.Context, offerID string, date time.Time) (bool, error) {
	return m.isDateAvailableFunc(ctx, offerID, date)
}

func newRouter(svc *mockOfferService) *httprouter.Router {
	router := httprouter.New()
	h := NewOfferHandler(svc, logger.New(logger.Config{Output: io.Discard}))
	h.RegisterRoutes(router)
	return router
}

func TestListOffersHandler(t *testing.T) {
	t.Run("parses filters from query parameters", func(t *testing.T) {
		var seenFilter model.OfferFilter
		svc := &mockOfferService{
			listFunc: func(ctx context.Context, filter model.OfferFilter, limit int, offset int64) ([]*model.Offer, int64, error) {
				seenFilter = filter
				return []*model.Offer{{ID: "offer-1"}}, 1, nil
			},
		}
		router := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers?trip_type=relax&season=summer&last_minute=true&destination=crete", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if seenFilter.TripType != model.TripRelax {
			t.Errorf("expected trip_type relax, got %s", seenFilter.TripType)
		}
		if seenFilter.Season != model.SeasonSummer {
			t.Errorf("expected season summer, got %s", seenFilter.Season)
		}
		if seenFilter.LastMinute == nil || !*seenFilter.LastMinute {
			t.Error("expected last_minute=true")
		}
		if seenFilter.Destination != "crete" {
			t.Errorf("expected destination crete, got %s", seenFilter.Destination)
		}
	})

	t.Run("rejects an unknown trip type", func(t *testing.T) {
		router := newRouter(&mockOfferService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers?trip_type=luxury", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestGetOfferHandler(t *testing.T) {
	t.Run("returns the offer", func(t *testing.T) {
		svc := &mockOfferService{
			getByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
				return &model.Offer{ID: id, Title: "Sunny Crete Escape"}, nil
			},
		}
		router := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/id/offer-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp struct {
			Data model.Offer `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.ID != "offer-1" {
			t.Errorf("expected offer-1, got %s", resp.Data.ID)
		}
	})

	t.Run("unknown offer returns 404", func(t *testing.T) {
		svc := &mockOfferService{
			getByIDFunc: func(ctx context.Context, id string) (*model.Offer, error) {
				return nil, apperrors.NotFoundWithID("Offer", id)
			},
		}
		router := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/id/ghost", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestAvailabilityHandler(t *testing.T) {
	t.Run("accepts a bare calendar date", func(t *testing.T) {
		svc := &mockOfferService{
			isDateAvailableFunc: func(ctx context.Context, offerID string, date time.Time) (bool, error) {
				want := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
				if !date.Equal(want) {
					t.Errorf("expected %v, got %v", want, date)
				}
				return true, nil
			},
		}
		router := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/id/offer-1/availability?date=2026-06-15", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp struct {
			Data availabilityResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Data.Available {
			t.Error("expected available=true")
		}
	})

	t.Run("missing date parameter returns 400", func(t *testing.T) {
		router := newRouter(&mockOfferService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/id/offer-1/availability", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("garbage date returns 400", func(t *testing.T) {
		router := newRouter(&mockOfferService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/id/offer-1/availability?date=tomorrow", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}
