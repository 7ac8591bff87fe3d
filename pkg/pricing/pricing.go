// Package pricing computes reservation quotes. Quotes are pure
// arithmetic over the offer's published per-guest price; discount
// display data (original price) never enters a quote.
package pricing

import (
	apperrors "voyago/pkg/errors"
	"voyago/pkg/model"
)

const (
	MinGuests = 1
	MaxGuests = 8
)

// ValidateGuests checks the bookable guest range.
func ValidateGuests(guests int) error {
	if guests < MinGuests || guests > MaxGuests {
		return apperrors.InvalidGuestCount(guests, MinGuests, MaxGuests)
	}
	return nil
}

// Quote returns the total price for booking the offer at the given
// guest count, in whole currency units.
func Quote(offer *model.Offer, guests int) (int64, error) {
	if err := ValidateGuests(guests); err != nil {
		return 0, err
	}
	return offer.Price * int64(guests), nil
}
