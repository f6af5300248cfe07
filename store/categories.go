package store

import (
	"context"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryStore struct {
	collection *mongo.Collection
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, s.collection, bson.M{})
}
