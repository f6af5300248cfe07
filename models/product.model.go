package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product availability
const (
	ProductAvailable   = "available"
	ProductUnavailable = "unavailable"
)

// Product represents an instrument listed by a seller
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	Email         string             `bson:"email" json:"email"` // owning seller
	SellerName    string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	Category      string             `bson:"category" json:"category" validate:"required"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	ResalePrice   float64            `bson:"resalePrice,omitempty" json:"resalePrice,omitempty"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	YearsOfUse    float64            `bson:"yearsOfUse,omitempty" json:"yearsOfUse,omitempty"`
	Condition     string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Status        string             `bson:"status" json:"status" validate:"omitempty,oneof=available unavailable"`
	IsAdvertise   bool               `bson:"isAdvertise" json:"isAdvertise"`
	PostedAt      time.Time          `bson:"postedAt" json:"postedAt"`
}

// ProductFilter narrows a product listing. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Email    string
}
