// Package store holds the MongoDB repositories behind the musicSpot routes.
// Each call is a single database operation; uniqueness is enforced by indexes.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
	ErrInvalidID = errors.New("invalid id")
)

// Store groups the four musicSpot collections
type Store struct {
	Users      *UserStore
	Products   *ProductStore
	Categories *CategoryStore
	Bookings   *BookingStore

	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{
		Users:      &UserStore{collection: db.Collection("users")},
		Products:   &ProductStore{collection: db.Collection("products")},
		Categories: &CategoryStore{collection: db.Collection("categories")},
		Bookings:   &BookingStore{collection: db.Collection("bookings")},
		db:         db,
	}
}

// IndexConflictError reports a unique index that existing documents already violate.
// The duplicates have to be removed before the index can be built.
type IndexConflictError struct {
	Collection string
	Indexes    []string
	Err        error
}

func (e *IndexConflictError) Error() string {
	return fmt.Sprintf("create %s indexes: existing documents violate %s: %v", e.Collection, strings.Join(e.Indexes, ", "), e.Err)
}

func (e *IndexConflictError) Unwrap() error { return e.Err }

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// Only documents carrying an email take part in the uniqueness check, so
// upserts by id that create bare documents do not collide on a null key.
var indexPlan = []collectionIndexes{
	{"users", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}},
	{"bookings", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "productName", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_product_email"),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}},
	{"products", []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "isAdvertise", Value: 1}}},
	}},
}

// EnsureIndexes creates the unique constraints that make registration and booking atomic
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, c := range indexPlan {
		if _, err := s.db.Collection(c.collection).Indexes().CreateMany(ctx, c.models); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return &IndexConflictError{Collection: c.collection, Indexes: uniqueNames(c.models), Err: err}
			}
			return fmt.Errorf("create %s indexes: %w", c.collection, err)
		}
	}
	return nil
}

func uniqueNames(idx []mongo.IndexModel) []string {
	var names []string
	for _, m := range idx {
		if m.Options != nil && m.Options.Unique != nil && *m.Options.Unique && m.Options.Name != nil {
			names = append(names, *m.Options.Name)
		}
	}
	return names
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objID, nil
}

func insertResult(r *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{Acknowledged: true, InsertedID: r.InsertedID}
}

func updateResult(r *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
		UpsertedCount: r.UpsertedCount,
		UpsertedID:    r.UpsertedID,
	}
}

func deleteResult(r *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: r.DeletedCount}
}

// setByID runs an upsert-enabled partial update on one document
func setByID(ctx context.Context, c *mongo.Collection, id string, fields bson.M) (*models.UpdateResult, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := c.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", c.Name(), id, err)
	}
	return updateResult(res), nil
}

func deleteByID(ctx context.Context, c *mongo.Collection, id string) (*models.DeleteResult, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", c.Name(), id, err)
	}
	return deleteResult(res), nil
}

func insert(ctx context.Context, c *mongo.Collection, doc interface{}) (*models.InsertResult, error) {
	res, err := c.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", c.Name(), err)
	}
	return insertResult(res), nil
}

// findAll decodes every document matching filter into a non-nil slice
func findAll[T any](ctx context.Context, c *mongo.Collection, filter interface{}) ([]T, error) {
	cursor, err := c.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
