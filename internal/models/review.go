package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Rating  int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
}
