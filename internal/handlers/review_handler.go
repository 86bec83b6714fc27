package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorsportal/portal-api/internal/models"
)

// GetReviews lists every review.
func (h *Handler) GetReviews(c *gin.Context) {
	cursor, err := h.DB.Collection("reviews").Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	defer cursor.Close(context.TODO())

	var reviews []models.Review
	if err = cursor.All(context.TODO(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}
	if reviews == nil {
		reviews = make([]models.Review, 0)
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview appends a review; no identity constraints apply.
func (h *Handler) CreateReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	review.ID = primitive.NewObjectID()

	if _, err := h.DB.Collection("reviews").InsertOne(context.TODO(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}
