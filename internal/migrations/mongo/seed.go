package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/pkg/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func price(v int64) *int64 {
	return &v
}

// SeedOffers is the catalog. Offers are immutable once published and
// only this job writes to the collection.
var SeedOffers = []model.Offer{
	{
		ID:               "offer-crete-greece",
		Title:            "Greek Holidays in Crete",
		Description:      "Discover the beauty of ancient culture and relax on the magnificent beaches of Crete. Our hotel sits just 50 metres from the sea, offering perfect conditions for a restful stay.",
		ShortDescription: "Relaxation on the beautiful beaches of Crete with optional sightseeing",
		Destination:      "Crete",
		Country:          "Greece",
		Duration:         7,
		Price:            2499,
		OriginalPrice:    price(2999),
		Images: []string{
			"https://images.pexels.com/photos/1285625/pexels-photo-1285625.jpeg",
			"https://images.pexels.com/photos/2034335/pexels-photo-2034335.jpeg",
			"https://images.pexels.com/photos/3566135/pexels-photo-3566135.jpeg",
		},
		Meals:        model.MealsAllIncl,
		TripType:     model.TripRelax,
		Season:       model.SeasonSummer,
		IsLastMinute: false,
		AvailableDates: []time.Time{
			date(2026, time.June, 15),
			date(2026, time.July, 1),
			date(2026, time.July, 15),
			date(2026, time.August, 1),
		},
		Itinerary: []model.ItineraryDay{
			{
				Day:         1,
				Title:       "Arrival and check-in",
				Description: "Airport transfer, hotel check-in, welcome dinner",
				Activities:  []string{"Airport transfer", "Hotel check-in", "Welcome dinner", "Walk around the neighbourhood"},
			},
			{
				Day:         2,
				Title:       "Heraklion sightseeing",
				Description: "Guided tour of the Cretan capital",
				Activities:  []string{"Knossos Palace", "Archaeological Museum", "Heraklion old town", "Local taverna"},
			},
			{
				Day:         3,
				Title:       "Beach day",
				Description: "Relaxing on the hotel beach, water activities",
				Activities:  []string{"Beach time", "Water sports", "SPA massage", "Evening entertainment"},
			},
		},
		Accommodation: "4* all inclusive hotel",
		Transport:     "Flight + transfer",
		Rating:        4.5,
		ReviewCount:   127,
		CreatedAt:     date(2026, time.January, 1),
	},
	{
		ID:               "offer-zakopane-poland",
		Title:            "Adventure in the Tatra Mountains",
		Description:      "An active holiday in the Polish mountains. Trekking, climbing and exploring the most beautiful trails of the Tatras.",
		ShortDescription: "Active mountain holiday in Poland with a guide",
		Destination:      "Zakopane",
		Country:          "Poland",
		Duration:         5,
		Price:            899,
		Images: []string{
			"https://images.pexels.com/photos/417074/pexels-photo-417074.jpeg",
			"https://images.pexels.com/photos/1287145/pexels-photo-1287145.jpeg",
			"https://images.pexels.com/photos/709552/pexels-photo-709552.jpeg",
		},
		Meals:        model.MealsHalfBoard,
		TripType:     model.TripAdventure,
		Season:       model.SeasonSummer,
		IsLastMinute: true,
		AvailableDates: []time.Time{
			date(2026, time.May, 20),
			date(2026, time.June, 10),
			date(2026, time.September, 15),
		},
		Itinerary: []model.ItineraryDay{
			{
				Day:         1,
				Title:       "Arrival in Zakopane",
				Description: "Hotel check-in, walk along Krupówki street",
				Activities:  []string{"Check-in", "Krupówki walk", "Regional dinner"},
			},
			{
				Day:         2,
				Title:       "Morskie Oko",
				Description: "Trip to the most famous lake in the Tatras",
				Activities:  []string{"Trek to Morskie Oko", "Mountain lunch", "Photo session"},
			},
		},
		Accommodation: "3* hotel in the centre of Zakopane",
		Transport:     "Coach",
		Rating:        4.8,
		ReviewCount:   89,
		CreatedAt:     date(2026, time.January, 15),
	},
	{
		ID:               "offer-rome-italy",
		Title:            "Culture and History of Rome",
		Description:      "Get to know the eternal city and its remarkable history. Guided tours of the most important monuments.",
		ShortDescription: "Guided sightseeing in Rome, monuments and culture",
		Destination:      "Rome",
		Country:          "Italy",
		Duration:         4,
		Price:            1599,
		Images: []string{
			"https://images.pexels.com/photos/2901209/pexels-photo-2901209.jpeg",
			"https://images.pexels.com/photos/532263/pexels-photo-532263.jpeg",
			"https://images.pexels.com/photos/1797161/pexels-photo-1797161.jpeg",
		},
		Meals:        model.MealsBreakfast,
		TripType:     model.TripCulture,
		Season:       model.SeasonSpring,
		IsLastMinute: false,
		AvailableDates: []time.Time{
			date(2026, time.April, 10),
			date(2026, time.May, 5),
			date(2026, time.October, 20),
		},
		Itinerary: []model.ItineraryDay{
			{
				Day:         1,
				Title:       "Colosseum and Forum Romanum",
				Description: "Visiting the most famous monuments of ancient Rome",
				Activities:  []string{"Colosseum", "Forum Romanum", "Palatine Hill", "Lunch in a Roman trattoria"},
			},
		},
		Accommodation: "4* hotel in the city centre",
		Transport:     "Flight",
		Rating:        4.7,
		ReviewCount:   156,
		CreatedAt:     date(2026, time.January, 20),
	},
	{
		ID:               "offer-makarska-croatia",
		Title:            "Family Holidays in Croatia",
		Description:      "The perfect holiday for the whole family on the Adriatic. Beautiful beaches, clear water and plenty of attractions for children.",
		ShortDescription: "Adriatic holidays for the whole family",
		Destination:      "Makarska",
		Country:          "Croatia",
		Duration:         10,
		Price:            3299,
		Images: []string{
			"https://images.pexels.com/photos/1320684/pexels-photo-1320684.jpeg",
			"https://images.pexels.com/photos/2034335/pexels-photo-2034335.jpeg",
			"https://images.pexels.com/photos/1174732/pexels-photo-1174732.jpeg",
		},
		Meals:        model.MealsHalfBoard,
		TripType:     model.TripFamily,
		Season:       model.SeasonSummer,
		IsLastMinute: false,
		AvailableDates: []time.Time{
			date(2026, time.July, 10),
			date(2026, time.August, 15),
			date(2026, time.September, 1),
		},
		Itinerary: []model.ItineraryDay{
			{
				Day:         1,
				Title:       "Arrival and relaxation",
				Description: "Transfer, check-in, first day on the beach",
				Activities:  []string{"Transfer", "Check-in", "Beach", "Mini disco for kids"},
			},
		},
		Accommodation: "4* resort with a children's pool",
		Transport:     "Coach",
		Rating:        4.6,
		ReviewCount:   203,
		CreatedAt:     date(2026, time.February, 1),
	},
	{
		ID:               "offer-hurghada-egypt",
		Title:            "Last Minute Egypt - Hurghada",
		Description:      "An amazing last minute offer to Egypt! Sun, beach and coral reef at an attractive price.",
		ShortDescription: "Last minute to Egypt - sun, beach, diving",
		Destination:      "Hurghada",
		Country:          "Egypt",
		Duration:         7,
		Price:            1899,
		OriginalPrice:    price(2599),
		Images: []string{
			"https://images.pexels.com/photos/1174732/pexels-photo-1174732.jpeg",
			"https://images.pexels.com/photos/2034335/pexels-photo-2034335.jpeg",
			"https://images.pexels.com/photos/3566135/pexels-photo-3566135.jpeg",
		},
		Meals:        model.MealsAllIncl,
		TripType:     model.TripRelax,
		Season:       model.SeasonWinter,
		IsLastMinute: true,
		AvailableDates: []time.Time{
			date(2026, time.March, 20),
			date(2026, time.April, 5),
		},
		Itinerary: []model.ItineraryDay{
			{
				Day:         1,
				Title:       "Arrival in Hurghada",
				Description: "Airport transfer, hotel check-in",
				Activities:  []string{"Airport transfer", "Check-in", "Dinner", "Walk around the hotel"},
			},
		},
		Accommodation: "5* all inclusive hotel by the sea",
		Transport:     "Flight + transfer",
		Rating:        4.4,
		ReviewCount:   92,
		CreatedAt:     date(2026, time.February, 15),
	},
}

// RunSeed inserts the seed catalog. Each offer is upserted by its
// _id, so re-running the job is safe and never duplicates.
func RunSeed(ctx context.Context, client *mongo.Client, dbName string) error {
	coll := client.Database(dbName).Collection("Offers")
	fmt.Printf("🌱 Seeding %d offers into database: %s\n", len(SeedOffers), dbName)

	for _, offer := range SeedOffers {
		filter := bson.M{"_id": offer.ID}
		update := bson.M{"$setOnInsert": offer}
		opts := options.Update().SetUpsert(true)
		if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed seeding offer %s: %w", offer.ID, err)
		}
	}

	fmt.Println("✅ Seed catalog in place.")
	return nil
}
