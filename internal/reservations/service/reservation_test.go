package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	reserrors "voyago/internal/reservations/errors"
	"voyago/internal/reservations/events"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

// fakeReservationRepository is an in-memory ledger with the same
// compare-and-swap contract as the Mongo implementation.
// beforeUpdateStatus, when set, runs just before the conditional
// update, standing in for a concurrent writer sneaking in between
// the caller's read and its compare-and-swap.
type fakeReservationRepository struct {
	mu                 sync.Mutex
	nextID             int
	records            map[string]*model.Reservation
	beforeUpdateStatus func()
}

func newFakeReservationRepository() *fakeReservationRepository {
	return &fakeReservationRepository{records: make(map[string]*model.Reservation)}
}

func (f *fakeReservationRepository) Create(_ context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	reservation.ID = fmt.Sprintf("res-%d", f.nextID)
	copied := *reservation
	f.records[reservation.ID] = &copied
	return reservation, nil
}

func (f *fakeReservationRepository) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return nil, reserrors.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeReservationRepository) FindByUser(_ context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Reservation
	for _, record := range f.records {
		if record.UserID == userID {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeReservationRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, record := range f.records {
		if record.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepository) UpdateStatus(_ context.Context, id string, from, to model.ReservationStatus) (*model.Reservation, error) {
	if f.beforeUpdateStatus != nil {
		f.beforeUpdateStatus()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok || record.Status != from {
		return nil, reserrors.ErrStateChanged
	}
	record.Status = to
	if from == model.StatusBlocked {
		record.ExpiresAt = nil
	}
	copied := *record
	return &copied, nil
}

type fakeLockRepository struct {
	mu    sync.Mutex
	held  map[string]bool
	stuck bool // simulate a lock held by a concurrent request
}

func newFakeLockRepository() *fakeLockRepository {
	return &fakeLockRepository{held: make(map[string]bool)}
}

func (f *fakeLockRepository) Acquire(_ context.Context, userID, offerID string, departureDate time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stuck {
		return "", reserrors.ErrSlotLocked
	}
	id := userID + ":" + offerID + ":" + departureDate.UTC().Format(time.DateOnly)
	if f.held[id] {
		return "", reserrors.ErrSlotLocked
	}
	f.held[id] = true
	return id, nil
}

func (f *fakeLockRepository) Release(_ context.Context, lockID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, lockID)
	return nil
}

type stubOfferService struct {
	offers map[string]*model.Offer
}

func (s *stubOfferService) GetByID(_ context.Context, id string) (*model.Offer, error) {
	offer, ok := s.offers[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Offer", id)
	}
	return offer, nil
}

func (s *stubOfferService) List(context.Context, model.OfferFilter, int, int64) ([]*model.Offer, int64, error) {
	return nil, 0, nil
}

func (s *stubOfferService) IsDateAvailable(ctx context.Context, offerID string, date time.Time) (bool, error) {
	offer, err := s.GetByID(ctx, offerID)
	if err != nil {
		return false, err
	}
	return offer.HasDepartureDate(date), nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (c *capturingPublisher) Publish(_ context.Context, eventType string, _ *model.Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, eventType)
}

func (c *capturingPublisher) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

var (
	departureDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	baseTime      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc       *reservationService
	repo      *fakeReservationRepository
	locks     *fakeLockRepository
	publisher *capturingPublisher
	clock     time.Time
}

func newFixture() *fixture {
	offers := &stubOfferService{offers: map[string]*model.Offer{
		"offer-crete": {
			ID:             "offer-crete",
			Title:          "Sunny Crete Escape",
			Price:          2499,
			AvailableDates: []time.Time{departureDate},
		},
	}}

	cfg := &config.Config{
		BlockHoldDuration: 3 * time.Hour,
		SlotLockTTL:       10 * time.Second,
		Log:               logger.New(logger.Config{Output: io.Discard}),
	}

	f := &fixture{
		repo:      newFakeReservationRepository(),
		locks:     newFakeLockRepository(),
		publisher: &capturingPublisher{},
		clock:     baseTime,
	}

	svc := NewReservationService(f.repo, f.locks, offers, f.publisher, cfg).(*reservationService)
	svc.nowFn = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

// expireConcurrently arranges for the reservation to be settled to
// expired by "someone else" right before the next conditional update,
// so that update loses its compare-and-swap.
func (f *fixture) expireConcurrently(reservationID string) {
	f.repo.beforeUpdateStatus = func() {
		f.repo.beforeUpdateStatus = nil
		f.repo.mu.Lock()
		defer f.repo.mu.Unlock()
		record := f.repo.records[reservationID]
		record.Status = model.StatusExpired
		record.ExpiresAt = nil
	}
}

func validRequest() *model.ReservationRequest {
	return &model.ReservationRequest{
		OfferID:       "offer-crete",
		DepartureDate: departureDate,
		Guests:        2,
	}
}

func TestCreateBlock(t *testing.T) {
	t.Run("hold deadline is exactly creation time plus the hold duration", func(t *testing.T) {
		f := newFixture()

		reservation, err := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if reservation.Status != model.StatusBlocked {
			t.Errorf("expected status blocked, got %s", reservation.Status)
		}
		if reservation.ExpiresAt == nil {
			t.Fatal("expected expires_at to be set")
		}
		want := baseTime.Add(3 * time.Hour)
		if !reservation.ExpiresAt.Equal(want) {
			t.Errorf("expected expires_at %v, got %v", want, *reservation.ExpiresAt)
		}
	})

	t.Run("total price is the per-guest price times guests", func(t *testing.T) {
		f := newFixture()

		reservation, err := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reservation.TotalPrice != 4998 {
			t.Errorf("expected total price 4998, got %d", reservation.TotalPrice)
		}
	})

	t.Run("unavailable date is rejected and nothing is written", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.DepartureDate = departureDate.AddDate(0, 0, 1)

		_, err := f.svc.CreateBlock(context.Background(), "user-1", req)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidDate {
			t.Fatalf("expected code %s, got %s", apperrors.CodeInvalidDate, appErr.Code)
		}
		if count, _ := f.repo.CountByUser(context.Background(), "user-1"); count != 0 {
			t.Errorf("expected empty ledger, got %d records", count)
		}
	})

	t.Run("out-of-range guest count is rejected", func(t *testing.T) {
		f := newFixture()

		for _, guests := range []int{0, 9} {
			req := validRequest()
			req.Guests = guests

			_, err := f.svc.CreateBlock(context.Background(), "user-1", req)
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeInvalidGuestCount {
				t.Errorf("guests=%d: expected code %s, got %s", guests, apperrors.CodeInvalidGuestCount, appErr.Code)
			}
		}
		if count, _ := f.repo.CountByUser(context.Background(), "user-1"); count != 0 {
			t.Errorf("expected empty ledger, got %d records", count)
		}
	})

	t.Run("missing user identity is unauthenticated", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateBlock(context.Background(), "", validRequest())
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeUnauthenticated {
			t.Errorf("expected code %s, got %s", apperrors.CodeUnauthenticated, appErr.Code)
		}
	})

	t.Run("contended slot lock surfaces a conflict", func(t *testing.T) {
		f := newFixture()
		f.locks.stuck = true

		_, err := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeConflict {
			t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
		}
	})

	t.Run("publishes a created event", func(t *testing.T) {
		f := newFixture()

		if _, err := f.svc.CreateBlock(context.Background(), "user-1", validRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := f.publisher.seen()
		if len(seen) != 1 || seen[0] != events.EventReservationCreated {
			t.Errorf("expected [%s], got %v", events.EventReservationCreated, seen)
		}
	})
}

func TestCreateConfirmed(t *testing.T) {
	f := newFixture()

	reservation, err := f.svc.CreateConfirmed(context.Background(), "user-1", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", reservation.Status)
	}
	if reservation.ExpiresAt != nil {
		t.Errorf("expected no expiry on a confirmed reservation, got %v", *reservation.ExpiresAt)
	}
	seen := f.publisher.seen()
	if len(seen) != 1 || seen[0] != events.EventReservationConfirmed {
		t.Errorf("expected [%s], got %v", events.EventReservationConfirmed, seen)
	}
}

func TestConfirm(t *testing.T) {
	t.Run("confirms a block just before its deadline", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(3*time.Hour - time.Second)

		confirmed, err := f.svc.Confirm(context.Background(), "user-1", block.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if confirmed.Status != model.StatusConfirmed {
			t.Errorf("expected status confirmed, got %s", confirmed.Status)
		}
		if confirmed.ExpiresAt != nil {
			t.Error("expected expiry to be cleared on confirmation")
		}
	})

	t.Run("deadline instant counts as expired", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(3 * time.Hour)

		_, err := f.svc.Confirm(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeExpired {
			t.Errorf("expected code %s, got %s", apperrors.CodeExpired, appErr.Code)
		}
	})

	t.Run("overdue block reports expired not invalid state", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(3*time.Hour + time.Second)

		_, err := f.svc.Confirm(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeExpired {
			t.Fatalf("expected code %s, got %s", apperrors.CodeExpired, appErr.Code)
		}

		// The failed confirm settled the ledger record.
		stored, _ := f.repo.FindByID(context.Background(), block.ID)
		if stored.Status != model.StatusExpired {
			t.Errorf("expected stored status expired, got %s", stored.Status)
		}
	})

	t.Run("confirming a confirmed reservation is an invalid state", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		if _, err := f.svc.Confirm(context.Background(), "user-1", block.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.svc.Confirm(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidState {
			t.Errorf("expected code %s, got %s", apperrors.CodeInvalidState, appErr.Code)
		}
	})

	t.Run("another user's reservation looks missing", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		_, err := f.svc.Confirm(context.Background(), "user-2", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeNotFound {
			t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
		}
	})

	t.Run("losing the race to a concurrent expiry reports expired", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		f.expireConcurrently(block.ID)

		_, err := f.svc.Confirm(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeExpired {
			t.Errorf("expected code %s, got %s", apperrors.CodeExpired, appErr.Code)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels a live block", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		cancelled, err := f.svc.Cancel(context.Background(), "user-1", block.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Errorf("expected status cancelled, got %s", cancelled.Status)
		}
	})

	t.Run("cancels a confirmed reservation", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		if _, err := f.svc.Confirm(context.Background(), "user-1", block.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cancelled, err := f.svc.Cancel(context.Background(), "user-1", block.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Errorf("expected status cancelled, got %s", cancelled.Status)
		}
	})

	t.Run("second cancel is an invalid state", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		if _, err := f.svc.Cancel(context.Background(), "user-1", block.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.svc.Cancel(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidState {
			t.Errorf("expected code %s, got %s", apperrors.CodeInvalidState, appErr.Code)
		}
	})

	t.Run("losing the race to a concurrent expiry is an invalid state", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
		f.expireConcurrently(block.ID)

		_, err := f.svc.Cancel(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidState {
			t.Errorf("expected code %s, got %s", apperrors.CodeInvalidState, appErr.Code)
		}
	})

	t.Run("cancelling an overdue block settles it and rejects", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(4 * time.Hour)

		_, err := f.svc.Cancel(context.Background(), "user-1", block.ID)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidState {
			t.Fatalf("expected code %s, got %s", apperrors.CodeInvalidState, appErr.Code)
		}

		stored, _ := f.repo.FindByID(context.Background(), block.ID)
		if stored.Status != model.StatusExpired {
			t.Errorf("expected stored status expired, got %s", stored.Status)
		}
	})
}

func TestGetByID(t *testing.T) {
	t.Run("block stays blocked one second before its deadline", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(3*time.Hour - time.Second)

		got, err := f.svc.GetByID(context.Background(), "user-1", block.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != model.StatusBlocked {
			t.Errorf("expected status blocked, got %s", got.Status)
		}
	})

	t.Run("read settles an overdue block to expired", func(t *testing.T) {
		f := newFixture()
		block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())

		f.advance(3*time.Hour + time.Second)

		got, err := f.svc.GetByID(context.Background(), "user-1", block.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != model.StatusExpired {
			t.Errorf("expected status expired, got %s", got.Status)
		}
		if got.ExpiresAt != nil {
			t.Error("expected expiry to be cleared once settled")
		}

		// Settling is idempotent: one expired event total.
		if _, err := f.svc.GetByID(context.Background(), "user-1", block.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var expiredEvents int
		for _, eventType := range f.publisher.seen() {
			if eventType == events.EventReservationExpired {
				expiredEvents++
			}
		}
		if expiredEvents != 1 {
			t.Errorf("expected exactly one expired event, got %d", expiredEvents)
		}
	})
}

func TestListByUser(t *testing.T) {
	f := newFixture()
	block, _ := f.svc.CreateBlock(context.Background(), "user-1", validRequest())
	if _, err := f.svc.CreateConfirmed(context.Background(), "user-2", validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.advance(5 * time.Hour)

	reservations, total, err := f.svc.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected total 1, got %d", total)
	}
	if len(reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(reservations))
	}
	if reservations[0].ID != block.ID {
		t.Errorf("expected reservation %s, got %s", block.ID, reservations[0].ID)
	}
	if reservations[0].Status != model.StatusExpired {
		t.Errorf("expected listing to settle the overdue block, got %s", reservations[0].Status)
	}
}
