package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	collection *mongo.Collection
}

// FindByEmail returns ErrNotFound when no user is registered under email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": objID})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// List returns all users, or only those holding role when it is set
func (s *UserStore) List(ctx context.Context, role string) ([]models.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	return findAll[models.User](ctx, s.collection, filter)
}

// Create inserts user. A second registration for the same email yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	return insert(ctx, s.collection, user)
}

func (s *UserStore) SetRole(ctx context.Context, id, role string) (*models.UpdateResult, error) {
	return setByID(ctx, s.collection, id, bson.M{"role": role})
}

func (s *UserStore) SetVerifyStatus(ctx context.Context, id, status string) (*models.UpdateResult, error) {
	return setByID(ctx, s.collection, id, bson.M{"verifyStatus": status})
}

// Delete removes the user only; their products and bookings stay
func (s *UserStore) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(ctx, s.collection, id)
}
