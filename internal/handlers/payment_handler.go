package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntent opens a payment intent for a booking's price and
// returns the client secret to confirm it from the frontend.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	clientSecret, err := h.Payments.CreateIntent(req.Price)
	if err != nil {
		log.Printf("Stripe error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
