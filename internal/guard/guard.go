// Package guard holds the authorization predicates. They return decisions
// rather than writing HTTP responses so the routing layer stays free to map
// them however it likes.
package guard

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorsportal/portal-api/internal/models"
)

type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
)

// Owner permits a caller to act on a resource only when the caller's email
// matches the resource owner's email exactly.
func Owner(caller, owner string) Decision {
	if caller == "" {
		return Unauthorized
	}
	if caller != owner {
		return Forbidden
	}
	return Allow
}

// RoleChecker answers role-mode questions against the users collection.
type RoleChecker struct {
	users *mongo.Collection
}

func NewRoleChecker(users *mongo.Collection) *RoleChecker {
	return &RoleChecker{users: users}
}

// Admin permits a caller only if their stored user record carries the admin
// role. A caller with no record at all is forbidden, not an error.
func (rc *RoleChecker) Admin(ctx context.Context, email string) (Decision, error) {
	if email == "" {
		return Unauthorized, nil
	}
	var user models.User
	err := rc.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Forbidden, nil
	}
	if err != nil {
		return Forbidden, err
	}
	if user.Role != models.RoleAdmin {
		return Forbidden, nil
	}
	return Allow, nil
}

// IsAdmin reports whether the email belongs to an admin, for read-only probes.
func (rc *RoleChecker) IsAdmin(ctx context.Context, email string) (bool, error) {
	decision, err := rc.Admin(ctx, email)
	if err != nil {
		return false, err
	}
	return decision == Allow, nil
}
