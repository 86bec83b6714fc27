package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a treatment offering. Name is the join key bookings reference;
// Slots is the full catalog of bookable times for a day.
type Service struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Slots []string           `bson:"slots" json:"slots"`
}
