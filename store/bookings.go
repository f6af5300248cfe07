package store

import (
	"context"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingStore struct {
	collection *mongo.Collection
}

func (s *BookingStore) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, s.collection, bson.M{"email": email})
}

// Create inserts booking. The (productName, email) index turns a repeat booking into ErrDuplicate.
func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) (*models.InsertResult, error) {
	return insert(ctx, s.collection, booking)
}

func (s *BookingStore) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(ctx, s.collection, id)
}
