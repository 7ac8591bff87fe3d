package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"voyago/internal/offers/service"
	apperrors "voyago/pkg/errors"
	httputil "voyago/pkg/http"
	"voyago/pkg/logger"
	"voyago/pkg/model"
)

type OfferHandler struct {
	service service.OfferService
	log     *logger.Logger
}

func NewOfferHandler(service service.OfferService, log *logger.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log,
	}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseOfferFilter(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	offers, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, offers, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

func (h *OfferHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	offer, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, offer); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

type availabilityResponse struct {
	OfferID   string    `json:"offer_id"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
}

func (h *OfferHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	available, err := h.service.IsDateAvailable(r.Context(), id, date)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{
		OfferID:   id,
		Date:      date,
		Available: available,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "error", err)
	}
}

func (h *OfferHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func parseOfferFilter(r *http.Request) (model.OfferFilter, error) {
	query := r.URL.Query()
	filter := model.OfferFilter{
		Destination: query.Get("destination"),
	}

	if v := query.Get("trip_type"); v != "" {
		switch model.TripType(v) {
		case model.TripRelax, model.TripAdventure, model.TripCulture, model.TripFamily:
			filter.TripType = model.TripType(v)
		default:
			return filter, apperrors.InvalidInput("invalid trip_type parameter: " + v)
		}
	}

	if v := query.Get("season"); v != "" {
		switch model.Season(v) {
		case model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn, model.SeasonWinter:
			filter.Season = model.Season(v)
		default:
			return filter, apperrors.InvalidInput("invalid season parameter: " + v)
		}
	}

	if v := query.Get("last_minute"); v != "" {
		lastMinute, err := strconv.ParseBool(v)
		if err != nil {
			return filter, apperrors.InvalidInput("invalid last_minute parameter: " + v)
		}
		filter.LastMinute = &lastMinute
	}

	return filter, nil
}

// parseDateParam accepts RFC3339 or a bare calendar date.
func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperrors.InvalidInput("'date' query parameter is required")
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		return parsed, nil
	}
	return time.Time{}, apperrors.InvalidInput("invalid date format, must be RFC3339 or YYYY-MM-DD")
}

func (h *OfferHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/offers", h.List)
	router.GET("/api/v1/offers/id/:id", h.GetByID)
	router.GET("/api/v1/offers/id/:id/availability", h.Availability)
}
