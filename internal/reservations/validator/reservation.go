package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
)

// ReservationValidator checks the shape of incoming reservation
// requests. Domain rules (date availability, guest range against the
// pricing policy, state transitions) live in the service layer.
type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) error {
	if req == nil {
		return apperrors.InvalidInput("Request body is required")
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.InvalidInput("Invalid request body")
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldName(fieldErr)] = fieldMessage(fieldErr)
	}

	return apperrors.Validation("Reservation request validation failed", details)
}

func fieldName(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "OfferID":
		return "offer_id"
	case "DepartureDate":
		return "departure_date"
	default:
		return strings.ToLower(fieldErr.Field())
	}
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fieldErr.Tag())
	}
}
