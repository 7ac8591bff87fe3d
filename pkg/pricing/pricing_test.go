package pricing

import (
	"errors"
	"testing"

	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
)

func TestQuote_MultipliesPriceByGuests(t *testing.T) {
	offer := &model.Offer{ID: "offer-1", Price: 2499}

	tests := []struct {
		guests int
		want   int64
	}{
		{1, 2499},
		{2, 4998},
		{4, 9996},
		{8, 19992},
	}

	for _, tt := range tests {
		got, err := Quote(offer, tt.guests)
		if err != nil {
			t.Fatalf("guests=%d: unexpected error: %v", tt.guests, err)
		}
		if got != tt.want {
			t.Errorf("guests=%d: expected %d, got %d", tt.guests, tt.want, got)
		}
	}
}

func TestQuote_RejectsGuestCountOutOfRange(t *testing.T) {
	offer := &model.Offer{ID: "offer-1", Price: 899}

	for _, guests := range []int{-1, 0, 9, 100} {
		_, err := Quote(offer, guests)
		if err == nil {
			t.Fatalf("guests=%d: expected error, got none", guests)
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("guests=%d: expected AppError, got %T", guests, err)
		}
		if appErr.Code != apperrors.CodeInvalidGuestCount {
			t.Errorf("guests=%d: expected code %s, got %s", guests, apperrors.CodeInvalidGuestCount, appErr.Code)
		}
	}
}

func TestQuote_IgnoresOriginalPrice(t *testing.T) {
	original := int64(2999)
	offer := &model.Offer{ID: "offer-1", Price: 2499, OriginalPrice: &original}

	got, err := Quote(offer, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4998 {
		t.Errorf("expected quote from discounted price (4998), got %d", got)
	}
}
