package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment is the record appended when a booking is paid; TransactionID is
// copied back onto the booking it settles.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID     string             `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
}
