package model

import "time"

type MealPlan string

const (
	MealsNone      MealPlan = "none"
	MealsBreakfast MealPlan = "BB"
	MealsHalfBoard MealPlan = "HB"
	MealsAllIncl   MealPlan = "AI"
)

type TripType string

const (
	TripRelax     TripType = "relax"
	TripAdventure TripType = "adventure"
	TripCulture   TripType = "culture"
	TripFamily    TripType = "family"
)

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// ItineraryDay describes one day of an offer's program.
type ItineraryDay struct {
	Day         int      `json:"day" bson:"day" validate:"required,min=1"`
	Title       string   `json:"title" bson:"title" validate:"required,min=2,max=100"`
	Description string   `json:"description" bson:"description" validate:"required,min=2,max=500"`
	Activities  []string `json:"activities" bson:"activities" validate:"omitempty,dive,min=1,max=100"`
}

// Offer is a published travel package. Offers are immutable once
// published; the catalog is append-only and only the migration
// command writes to it.
type Offer struct {
	ID               string         `json:"id,omitempty" bson:"_id,omitempty"`
	Title            string         `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description      string         `json:"description" bson:"description" validate:"required,min=2,max=2000"`
	ShortDescription string         `json:"short_description" bson:"short_description" validate:"required,min=2,max=300"`
	Destination      string         `json:"destination" bson:"destination" validate:"required,min=2,max=100"`
	Country          string         `json:"country" bson:"country" validate:"required,min=2,max=100"`
	Duration         int            `json:"duration" bson:"duration" validate:"required,min=1,max=60"`
	Price            int64          `json:"price" bson:"price" validate:"required,min=1"`
	OriginalPrice    *int64         `json:"original_price,omitempty" bson:"original_price,omitempty" validate:"omitempty,min=1"`
	Images           []string       `json:"images" bson:"images" validate:"omitempty,dive,url"`
	Meals            MealPlan       `json:"meals" bson:"meals" validate:"required,oneof=none BB HB AI"`
	TripType         TripType       `json:"trip_type" bson:"trip_type" validate:"required,oneof=relax adventure culture family"`
	Season           Season         `json:"season" bson:"season" validate:"required,oneof=spring summer autumn winter"`
	IsLastMinute     bool           `json:"is_last_minute" bson:"is_last_minute"`
	AvailableDates   []time.Time    `json:"available_dates" bson:"available_dates" validate:"required,min=1"`
	Itinerary        []ItineraryDay `json:"itinerary" bson:"itinerary" validate:"omitempty,dive"`
	Accommodation    string         `json:"accommodation" bson:"accommodation" validate:"required,min=2,max=200"`
	Transport        string         `json:"transport" bson:"transport" validate:"required,min=2,max=200"`
	Rating           float64        `json:"rating" bson:"rating" validate:"min=0,max=5"`
	ReviewCount      int            `json:"review_count" bson:"review_count" validate:"min=0"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
}

// HasDepartureDate reports whether date matches one of the offer's
// available departure dates. Dates are compared at day granularity
// in UTC; time-of-day on either side is ignored.
func (o *Offer) HasDepartureDate(date time.Time) bool {
	want := date.UTC().Truncate(24 * time.Hour)
	for _, d := range o.AvailableDates {
		if d.UTC().Truncate(24 * time.Hour).Equal(want) {
			return true
		}
	}
	return false
}

// OfferFilter narrows catalog listings. Zero values mean "no
// constraint" for that dimension.
type OfferFilter struct {
	TripType    TripType
	Season      Season
	LastMinute  *bool
	Destination string
}

func (f OfferFilter) Empty() bool {
	return f.TripType == "" && f.Season == "" && f.LastMinute == nil && f.Destination == ""
}
