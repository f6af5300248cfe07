package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a buyer's reservation of a product. (productName, email) is unique.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID   string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string             `bson:"productName" json:"productName" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	BuyerName   string             `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	BookedAt    time.Time          `bson:"bookedAt" json:"bookedAt"`
}
