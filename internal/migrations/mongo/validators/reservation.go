package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"offer_id",
			"status",
			"guests",
			"total_price",
			"departure_date",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"offer_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"blocked",
					"confirmed",
					"cancelled",
					"expired",
				},
			},

			"guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  8,
			},

			"total_price": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"departure_date": bson.M{
				"bsonType": "date",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
