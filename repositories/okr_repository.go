package repository

import (
	"context"
	"errors"

	"okrproject/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches the requested identifier.
var ErrNotFound = errors.New("document not found")

type OKRRepository interface {
	Create(ctx context.Context, okr *models.OKR) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.OKR, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.OKR, error)
	FindAll(ctx context.Context, filter bson.M) ([]models.OKR, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Replace(ctx context.Context, id primitive.ObjectID, okr *models.OKR) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type okrRepository struct {
	collection *mongo.Collection
}

func NewOKRRepository(db *mongo.Database) OKRRepository {
	return &okrRepository{
		collection: db.Collection("okrs"),
	}
}

func (r *okrRepository) Create(ctx context.Context, okr *models.OKR) error {
	okr.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, okr)
	return err
}

func (r *okrRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.OKR, error) {
	var okr models.OKR
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&okr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &okr, nil
}

// Find returns a page of OKRs matching the filter, newest first.
func (r *okrRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.OKR, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	okrs := []models.OKR{}
	if err = cursor.All(ctx, &okrs); err != nil {
		return nil, err
	}

	return okrs, nil
}

// FindAll returns every OKR matching the filter, newest first. Used by the
// owner listing and the stats scan, which are unpaginated.
func (r *okrRepository) FindAll(ctx context.Context, filter bson.M) ([]models.OKR, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	okrs := []models.OKR{}
	if err = cursor.All(ctx, &okrs); err != nil {
		return nil, err
	}

	return okrs, nil
}

func (r *okrRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

// Replace persists the whole aggregate in a single atomic document write.
func (r *okrRepository) Replace(ctx context.Context, id primitive.ObjectID, okr *models.OKR) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": okr})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *okrRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
