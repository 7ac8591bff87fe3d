package model

import (
	"testing"
	"time"
)

func TestHasDepartureDate(t *testing.T) {
	offer := &Offer{
		AvailableDates: []time.Time{
			time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	t.Run("matches the exact day", func(t *testing.T) {
		if !offer.HasDepartureDate(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected date to match")
		}
	})

	t.Run("ignores time of day", func(t *testing.T) {
		if !offer.HasDepartureDate(time.Date(2026, 6, 15, 23, 59, 59, 0, time.UTC)) {
			t.Error("expected date with time-of-day to match")
		}
	})

	t.Run("compares in UTC across zones", func(t *testing.T) {
		// 01:00 CEST on the 15th is 23:00 UTC on the 14th.
		zone := time.FixedZone("CEST", 2*60*60)
		if offer.HasDepartureDate(time.Date(2026, 6, 15, 1, 0, 0, 0, zone)) {
			t.Error("expected zoned time on a different UTC day not to match")
		}
	})

	t.Run("rejects an adjacent day", func(t *testing.T) {
		if offer.HasDepartureDate(time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected adjacent day not to match")
		}
	})

	t.Run("empty date set matches nothing", func(t *testing.T) {
		empty := &Offer{}
		if empty.HasDepartureDate(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected no match on empty set")
		}
	})
}

func TestOfferFilterEmpty(t *testing.T) {
	if !(OfferFilter{}).Empty() {
		t.Error("zero filter must be empty")
	}

	lastMinute := false
	filters := []OfferFilter{
		{TripType: TripRelax},
		{Season: SeasonSummer},
		{LastMinute: &lastMinute},
		{Destination: "crete"},
	}
	for i, f := range filters {
		if f.Empty() {
			t.Errorf("filter %d must not be empty", i)
		}
	}
}
