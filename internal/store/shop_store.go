package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-backend/internal/models"
)

type MongoShopStore struct {
	collection *mongo.Collection
}

func NewMongoShopStore(db *mongo.Database) *MongoShopStore {
	return &MongoShopStore{collection: db.Collection(shopsCollection)}
}

func (s *MongoShopStore) Create(ctx context.Context, shop *models.Shop) error {
	shop.CreatedAt = now()
	shop.UpdatedAt = shop.CreatedAt

	res, err := s.collection.InsertOne(ctx, shop)
	if err != nil {
		return fmt.Errorf("insert shop: %w", translate(err))
	}
	shop.ID = insertedID(res)
	return nil
}

func (s *MongoShopStore) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.Shop](ctx, s.collection, bson.M{"_id": oid})
}

func (s *MongoShopStore) GetByUserID(ctx context.Context, userID string) (*models.Shop, error) {
	return findOne[models.Shop](ctx, s.collection, bson.M{"userId": userID})
}

func (s *MongoShopStore) List(ctx context.Context) ([]*models.Shop, error) {
	return findMany[models.Shop](ctx, s.collection, bson.M{})
}

func (s *MongoShopStore) Update(ctx context.Context, id string, patch *models.ShopPatch) (*models.Shop, error) {
	return updateByID[models.Shop](ctx, s.collection, id, shopSet(patch))
}

func (s *MongoShopStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}

func shopSet(p *models.ShopPatch) bson.M {
	set := bson.M{}
	setIfPresent(set, "userId", p.UserID)
	setIfPresent(set, "name", p.Name)
	setIfPresent(set, "description", p.Description)
	setIfPresent(set, "street", p.Street)
	setIfPresent(set, "city", p.City)
	setIfPresent(set, "province", p.Province)
	if p.ImageURL != nil {
		set["image_url"] = p.ImageURL
	}
	return set
}
