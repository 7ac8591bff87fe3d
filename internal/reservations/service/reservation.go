package service

import (
	"context"
	"errors"
	"sync"
	"time"

	offersservice "voyago/internal/offers/service"
	reserrors "voyago/internal/reservations/errors"
	"voyago/internal/reservations/events"
	"voyago/internal/reservations/repository"
	"voyago/internal/reservations/validator"
	"voyago/pkg/config"
	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
	"voyago/pkg/pricing"
)

// ReservationService owns the reservation ledger and its state
// machine. A "block" is a time-boxed hold on an offer slot; it must
// be confirmed before its deadline or it lapses. Expiry is lazy:
// there is no background sweeper, every read or mutation settles an
// overdue block it encounters before acting on it.
type ReservationService interface {
	CreateBlock(ctx context.Context, userID string, req *model.ReservationRequest) (*model.Reservation, error)
	CreateConfirmed(ctx context.Context, userID string, req *model.ReservationRequest) (*model.Reservation, error)
	Confirm(ctx context.Context, userID, reservationID string) (*model.Reservation, error)
	Cancel(ctx context.Context, userID, reservationID string) (*model.Reservation, error)
	GetByID(ctx context.Context, userID, reservationID string) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	offers    offersservice.OfferService
	publisher events.Publisher
	validator *validator.ReservationValidator
	cfg       *config.Config
	nowFn     func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	offers offersservice.OfferService,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		offers:    offers,
		publisher: publisher,
		validator: validator.NewReservationValidator(),
		cfg:       cfg,
		nowFn:     time.Now,
	}
}

// CreateBlock places a hold on the offer slot. The block starts a
// countdown of BlockHoldDuration from the moment of creation; the
// quoted total is frozen into the record and never recomputed.
func (s *reservationService) CreateBlock(ctx context.Context, userID string, req *model.ReservationRequest) (*model.Reservation, error) {
	now := s.nowFn()
	expiresAt := now.Add(s.cfg.BlockHoldDuration)

	reservation, err := s.create(ctx, userID, req, now, model.StatusBlocked, &expiresAt)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.EventReservationCreated, reservation)
	return reservation, nil
}

// CreateConfirmed books the offer in one step, skipping the hold
// phase entirely.
func (s *reservationService) CreateConfirmed(ctx context.Context, userID string, req *model.ReservationRequest) (*model.Reservation, error) {
	now := s.nowFn()

	reservation, err := s.create(ctx, userID, req, now, model.StatusConfirmed, nil)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.EventReservationConfirmed, reservation)
	return reservation, nil
}

func (s *reservationService) create(
	ctx context.Context,
	userID string,
	req *model.ReservationRequest,
	now time.Time,
	status model.ReservationStatus,
	expiresAt *time.Time,
) (*model.Reservation, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("User identity is required")
	}
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	lockID, err := s.lockRepo.Acquire(ctx, userID, req.OfferID, req.DepartureDate)
	if err != nil {
		if errors.Is(err, reserrors.ErrSlotLocked) {
			return nil, apperrors.Conflict("Another reservation for this slot is in progress")
		}
		return nil, apperrors.Internal("Failed to acquire reservation lock", err)
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	offer, err := s.offers.GetByID(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}
	if !offer.HasDepartureDate(req.DepartureDate) {
		return nil, apperrors.InvalidDate(offer.ID, req.DepartureDate.UTC().Format(time.DateOnly))
	}

	totalPrice, err := pricing.Quote(offer, req.Guests)
	if err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		UserID:        userID,
		OfferID:       offer.ID,
		Status:        status,
		Guests:        req.Guests,
		TotalPrice:    totalPrice,
		DepartureDate: req.DepartureDate,
		ExpiresAt:     expiresAt,
		CreatedAt:     now,
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "user_id", userID, "offer_id", offer.ID, "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	return created, nil
}

// Confirm promotes a live block to a confirmed reservation. A block
// whose deadline has passed is settled to expired first and the call
// reports the expiry rather than an illegal transition.
func (s *reservationService) Confirm(ctx context.Context, userID, reservationID string) (*model.Reservation, error) {
	now := s.nowFn()

	reservation, err := s.fetchOwned(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err = s.settleIfOverdue(ctx, reservation, now)
	if err != nil {
		return nil, err
	}

	switch reservation.Status {
	case model.StatusBlocked:
		// fall through to the conditional update below
	case model.StatusExpired:
		return nil, apperrors.Expired(reservation.ID)
	default:
		return nil, apperrors.InvalidState("confirm", string(reservation.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, reservation.ID, model.StatusBlocked, model.StatusConfirmed)
	if err != nil {
		if errors.Is(err, reserrors.ErrStateChanged) {
			return nil, s.concurrentStateError(ctx, userID, reservationID, "confirm")
		}
		return nil, apperrors.Internal("Failed to confirm reservation", err)
	}

	s.publisher.Publish(ctx, events.EventReservationConfirmed, updated)
	return updated, nil
}

// Cancel moves a blocked or confirmed reservation to cancelled.
// Terminal reservations reject the call; an overdue block settles to
// expired first, so cancelling it reports InvalidState, not success.
func (s *reservationService) Cancel(ctx context.Context, userID, reservationID string) (*model.Reservation, error) {
	now := s.nowFn()

	reservation, err := s.fetchOwned(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err = s.settleIfOverdue(ctx, reservation, now)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(model.StatusCancelled) {
		return nil, apperrors.InvalidState("cancel", string(reservation.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, reservation.ID, reservation.Status, model.StatusCancelled)
	if err != nil {
		if errors.Is(err, reserrors.ErrStateChanged) {
			return nil, s.concurrentStateError(ctx, userID, reservationID, "cancel")
		}
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}

	s.publisher.Publish(ctx, events.EventReservationCancelled, updated)
	return updated, nil
}

// GetByID returns the reservation, settling it to expired first when
// its hold deadline has passed. Reads never observe an overdue block
// as blocked.
func (s *reservationService) GetByID(ctx context.Context, userID, reservationID string) (*model.Reservation, error) {
	now := s.nowFn()

	reservation, err := s.fetchOwned(ctx, userID, reservationID)
	if err != nil {
		return nil, err
	}

	return s.settleIfOverdue(ctx, reservation, now)
}

func (s *reservationService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	now := s.nowFn()

	if userID == "" {
		return nil, 0, apperrors.Unauthenticated("User identity is required")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	// One clock reading for the whole page keeps the listing
	// internally consistent.
	for i, reservation := range reservations {
		settled, err := s.settleIfOverdue(ctx, reservation, now)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = settled
	}

	return reservations, count, nil
}

func (s *reservationService) fetchOwned(ctx context.Context, userID, reservationID string) (*model.Reservation, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("User identity is required")
	}
	if reservationID == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", reservationID)
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	// Another user's reservation is indistinguishable from a missing
	// one.
	if reservation.UserID != userID {
		return nil, apperrors.NotFoundWithID("Reservation", reservationID)
	}

	return reservation, nil
}

// settleIfOverdue is the lazy expiry engine. A blocked reservation
// whose deadline is at or before now is moved to expired with a
// compare-and-swap on the stored status, so concurrent settlers
// produce exactly one transition and one event. The deadline instant
// itself already counts as expired.
func (s *reservationService) settleIfOverdue(ctx context.Context, reservation *model.Reservation, now time.Time) (*model.Reservation, error) {
	if reservation.Status != model.StatusBlocked || reservation.ExpiresAt == nil {
		return reservation, nil
	}
	if now.Before(*reservation.ExpiresAt) {
		return reservation, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, reservation.ID, model.StatusBlocked, model.StatusExpired)
	if err != nil {
		if errors.Is(err, reserrors.ErrStateChanged) {
			// Someone else settled or confirmed it first; read back
			// whatever they decided.
			current, findErr := s.repo.FindByID(ctx, reservation.ID)
			if findErr != nil {
				return nil, apperrors.Internal("Failed to re-read reservation after concurrent update", findErr)
			}
			return current, nil
		}
		return nil, apperrors.Internal("Failed to expire reservation", err)
	}

	s.publisher.Publish(ctx, events.EventReservationExpired, updated)
	return updated, nil
}

// concurrentStateError re-reads the record after a lost
// compare-and-swap and names the status the caller actually raced
// against. Only confirm distinguishes a concurrently expired block;
// cancel reports any terminal status as InvalidState.
func (s *reservationService) concurrentStateError(ctx context.Context, userID, reservationID, operation string) error {
	current, err := s.fetchOwned(ctx, userID, reservationID)
	if err != nil {
		return err
	}
	if operation == "confirm" && current.Status == model.StatusExpired {
		return apperrors.Expired(current.ID)
	}
	return apperrors.InvalidState(operation, string(current.Status))
}
