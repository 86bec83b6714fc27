package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorsportal/portal-api/internal/guard"
	"github.com/doctorsportal/portal-api/internal/services"
)

// Handler carries the store handle and injected services every route method
// needs. Built once at startup and shared.
type Handler struct {
	DB       *mongo.Database
	Payments *services.PaymentService
	Roles    *guard.RoleChecker
}

func NewHandler(db *mongo.Database, payments *services.PaymentService) *Handler {
	return &Handler{
		DB:       db,
		Payments: payments,
		Roles:    guard.NewRoleChecker(db.Collection("users")),
	}
}
