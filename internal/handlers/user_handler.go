package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorsportal/portal-api/internal/models"
	"github.com/doctorsportal/portal-api/internal/utils"
)

// PutUser serves both PUT /user surfaces. gin cannot register
// /user/admin/:email next to /user/:email (static segment vs wildcard in the
// same method tree), so the route is a catch-all and the split happens here;
// the admin branch runs the token and role guards before promoting. Wire
// paths are unchanged.
func (h *Handler) PutUser(auth, admin gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimPrefix(c.Param("email"), "/")
		if target, ok := strings.CutPrefix(email, "admin/"); ok {
			c.Params = gin.Params{{Key: "email", Value: target}}
			auth(c)
			if c.IsAborted() {
				return
			}
			admin(c)
			if c.IsAborted() {
				return
			}
			h.PromoteUser(c)
			return
		}
		c.Params = gin.Params{{Key: "email", Value: email}}
		h.UpsertUser(c)
	}
}

// GetUsers lists every user record.
func (h *Handler) GetUsers(c *gin.Context) {
	cursor, err := h.DB.Collection("users").Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err = cursor.All(context.TODO(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}

	c.JSON(http.StatusOK, users)
}

// UpsertUser stores the user under the email in the path and hands back a
// fresh access token for that email.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields := bson.M{"email": email}
	if req.Name != "" {
		fields["name"] = req.Name
	}

	opts := options.Update().SetUpsert(true)
	result, err := h.DB.Collection("users").UpdateOne(
		context.TODO(), bson.M{"email": email}, bson.M{"$set": fields}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert user"})
		return
	}

	token, err := utils.GenerateJWT(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "accessToken": token})
}

// PromoteUser sets the target's role to admin. The admin middleware has
// already confirmed the caller's own role; promoting an admin again is a
// no-op by construction.
func (h *Handler) PromoteUser(c *gin.Context) {
	email := c.Param("email")

	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	result, err := h.DB.Collection("users").UpdateOne(context.TODO(), bson.M{"email": email}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin"})
}

// DeleteUser removes a user record by email.
func (h *Handler) DeleteUser(c *gin.Context) {
	email := c.Param("email")

	result, err := h.DB.Collection("users").DeleteOne(context.TODO(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// CheckAdmin reports whether the email in the path belongs to an admin.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")

	isAdmin, err := h.Roles.IsAdmin(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}
