package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voyago/internal/reservations/service"
	apperrors "voyago/pkg/errors"
	httputil "voyago/pkg/http"
	"voyago/pkg/logger"
	"voyago/pkg/middleware"
	"voyago/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// CreateBlock places a time-boxed hold on an offer slot.
func (h *ReservationHandler) CreateBlock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "CreateBlock", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "CreateBlock", err)
		return
	}

	reservation, err := h.service.CreateBlock(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, "CreateBlock", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBlock", "error", err)
	}
}

// Create books the offer immediately, without a hold phase.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	reservation, err := h.service.CreateConfirmed(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "Confirm", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	reservation, err := h.service.Confirm(r.Context(), userID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Confirm", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Confirm", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "Cancel", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	reservation, err := h.service.Cancel(r.Context(), userID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetByID", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	reservation, err := h.service.GetByID(r.Context(), userID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "List", apperrors.Unauthenticated("Missing "+middleware.UserIDHeader+" header"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	reservations, total, err := h.service.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func decodeRequest(r *http.Request) (*model.ReservationRequest, error) {
	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.InvalidInput("Invalid JSON request body")
	}
	return &req, nil
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations/block", h.CreateBlock)
	router.POST("/api/v1/reservations", h.Create)
	router.POST("/api/v1/reservations/id/:id/confirm", h.Confirm)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.GET("/api/v1/reservations", h.List)
}
