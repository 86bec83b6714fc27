package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorsportal/portal-api/internal/guard"
	"github.com/doctorsportal/portal-api/internal/middleware"
	"github.com/doctorsportal/portal-api/internal/models"
)

// GetBookings lists the bookings owned by the patient in the query string.
// The caller may only read their own bookings.
func (h *Handler) GetBookings(c *gin.Context) {
	patient := c.Query("patient")
	caller := c.GetString(middleware.EmailKey)

	if decision := guard.Owner(caller, patient); decision != guard.Allow {
		middleware.Abort(c, decision)
		return
	}

	cursor, err := h.DB.Collection("bookings").Find(context.TODO(), bson.M{"patient": patient})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	defer cursor.Close(context.TODO())

	var bookings []models.Booking
	if err = cursor.All(context.TODO(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}
	if bookings == nil {
		bookings = make([]models.Booking, 0)
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking fetches a single booking by its ObjectID.
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	err = h.DB.Collection("bookings").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CreateBooking admits a booking unless the patient already holds one for the
// same treatment on the same date. The rejection reuses the existing record;
// the candidate's slot is never compared. A unique index on
// (treatment, date, patient) backs up the read in case two inserts race.
func (h *Handler) CreateBooking(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	collection := h.DB.Collection("bookings")
	query := bson.M{
		"treatment": booking.Treatment,
		"date":      booking.Date,
		"patient":   booking.Patient,
	}

	var existing models.Booking
	err := collection.FindOne(context.TODO(), query).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing booking"})
		return
	}

	result, err := collection.InsertOne(context.TODO(), booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race; the winner's record is the rejection payload.
			if findErr := collection.FindOne(context.TODO(), query).Decode(&existing); findErr == nil {
				c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": result.InsertedID})
}

// PayBooking records a payment against a booking: the payment document is
// appended and the booking is marked paid with its transaction id.
func (h *Handler) PayBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	payment.BookingID = id.Hex()

	// Mark the booking first; an unknown id must not leave a stray payment
	// record behind.
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": payment.TransactionID}}
	result, err := h.DB.Collection("bookings").UpdateOne(context.TODO(), bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if _, err := h.DB.Collection("payments").InsertOne(context.TODO(), payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	var booking models.Booking
	if err := h.DB.Collection("bookings").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}
