package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. An empty role is a registered user with no marketplace role yet.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Seller verification states
const (
	StatusUnverified = "unverified"
	StatusVerified   = "verified"
)

// User represents a registered musicSpot account
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role         string             `bson:"role" json:"role" validate:"omitempty,oneof=buyer seller"`
	VerifyStatus string             `bson:"verifyStatus" json:"verifyStatus"`
}

// IsAdmin reports whether the stored role is admin
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasRole reports whether the user holds one of roles. No roles means any registered user.
func (u *User) HasRole(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
