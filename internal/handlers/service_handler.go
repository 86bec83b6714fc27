package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/doctorsportal/portal-api/internal/models"
	"github.com/doctorsportal/portal-api/internal/services"
)

// GetServices returns the full treatment catalog.
func (h *Handler) GetServices(c *gin.Context) {
	cursor, err := h.DB.Collection("services").Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve services"})
		return
	}
	defer cursor.Close(context.TODO())

	var svcs []models.Service
	if err = cursor.All(context.TODO(), &svcs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode services"})
		return
	}
	if svcs == nil {
		svcs = make([]models.Service, 0)
	}

	c.JSON(http.StatusOK, svcs)
}

// GetAvailable returns each service with its remaining open slots for the
// requested date. Availability is recomputed on every call, never stored.
func (h *Handler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = services.DefaultBookingDate
	}

	cursor, err := h.DB.Collection("services").Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve services"})
		return
	}
	defer cursor.Close(context.TODO())

	var svcs []models.Service
	if err = cursor.All(context.TODO(), &svcs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode services"})
		return
	}

	bookingCursor, err := h.DB.Collection("bookings").Find(context.TODO(), bson.M{"date": date})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	defer bookingCursor.Close(context.TODO())

	var bookings []models.Booking
	if err = bookingCursor.All(context.TODO(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}

	svcs = services.AvailableSlots(svcs, bookings)
	if svcs == nil {
		svcs = make([]models.Service, 0)
	}

	c.JSON(http.StatusOK, svcs)
}
