package validators

import "go.mongodb.org/mongo-driver/bson"

var OfferValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"short_description",
			"destination",
			"country",
			"duration",
			"price",
			"meals",
			"trip_type",
			"season",
			"available_dates",
			"accommodation",
			"transport",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2000,
			},

			"short_description": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 300,
			},

			"destination": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"country": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"duration": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  60,
			},

			"price": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"original_price": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"meals": bson.M{
				"bsonType": "string",
				"enum": []string{
					"none",
					"BB",
					"HB",
					"AI",
				},
			},

			"trip_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"relax",
					"adventure",
					"culture",
					"family",
				},
			},

			"season": bson.M{
				"bsonType": "string",
				"enum": []string{
					"spring",
					"summer",
					"autumn",
					"winter",
				},
			},

			"is_last_minute": bson.M{
				"bsonType": "bool",
			},

			"available_dates": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "date",
				},
			},

			"rating": bson.M{
				"bsonType": "double",
				"minimum":  0,
				"maximum":  5,
			},

			"review_count": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
