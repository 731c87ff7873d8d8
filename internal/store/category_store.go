package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-backend/internal/models"
)

type MongoCategoryStore struct {
	collection *mongo.Collection
}

func NewMongoCategoryStore(db *mongo.Database) *MongoCategoryStore {
	return &MongoCategoryStore{collection: db.Collection(categoriesCollection)}
}

func (s *MongoCategoryStore) Create(ctx context.Context, category *models.Category) error {
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt

	res, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("insert category: %w", translate(err))
	}
	category.ID = insertedID(res)
	return nil
}

func (s *MongoCategoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.Category](ctx, s.collection, bson.M{"_id": oid})
}

// GetByName matches the name exactly; with duplicates the first match wins.
func (s *MongoCategoryStore) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return findOne[models.Category](ctx, s.collection, bson.M{"name": name})
}

func (s *MongoCategoryStore) List(ctx context.Context) ([]*models.Category, error) {
	return findMany[models.Category](ctx, s.collection, bson.M{})
}

func (s *MongoCategoryStore) Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error) {
	set := bson.M{}
	setIfPresent(set, "name", patch.Name)
	setIfPresent(set, "description", patch.Description)
	return updateByID[models.Category](ctx, s.collection, id, set)
}

func (s *MongoCategoryStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}
