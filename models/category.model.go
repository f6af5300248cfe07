package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is read-only reference data
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
