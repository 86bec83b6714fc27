package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorsportal/portal-api/internal/models"
)

// GetDoctors lists every doctor.
func (h *Handler) GetDoctors(c *gin.Context) {
	cursor, err := h.DB.Collection("doctors").Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}
	defer cursor.Close(context.TODO())

	var doctors []models.Doctor
	if err = cursor.All(context.TODO(), &doctors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode doctors"})
		return
	}
	if doctors == nil {
		doctors = make([]models.Doctor, 0)
	}

	c.JSON(http.StatusOK, doctors)
}

// CreateDoctor adds a doctor record. Admin only, enforced by middleware.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	doctor.ID = primitive.NewObjectID()

	if _, err := h.DB.Collection("doctors").InsertOne(context.TODO(), doctor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create doctor"})
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// DeleteDoctor removes a doctor by email. Admin only, enforced by middleware.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	email := c.Param("email")

	result, err := h.DB.Collection("doctors").DeleteOne(context.TODO(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
