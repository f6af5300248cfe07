package store

import (
	"context"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductStore struct {
	collection *mongo.Collection
}

// List scans products, narrowed by every non-empty field of filter
func (s *ProductStore) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	return findAll[models.Product](ctx, s.collection, query)
}

// ListAdvertised returns promoted products that have not been marked unavailable
func (s *ProductStore) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	query := bson.M{
		"isAdvertise": true,
		"status":      bson.M{"$ne": models.ProductUnavailable},
	}
	return findAll[models.Product](ctx, s.collection, query)
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) (*models.InsertResult, error) {
	return insert(ctx, s.collection, product)
}

// Advertise flips isAdvertise on; no other field changes
func (s *ProductStore) Advertise(ctx context.Context, id string) (*models.UpdateResult, error) {
	return setByID(ctx, s.collection, id, bson.M{"isAdvertise": true})
}

func (s *ProductStore) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(ctx, s.collection, id)
}
