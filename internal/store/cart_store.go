package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/models"
)

type MongoCartStore struct {
	collection *mongo.Collection
}

func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{collection: db.Collection(cartsCollection)}
}

func (s *MongoCartStore) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return findOne[models.Cart](ctx, s.collection, bson.M{"userId": userID})
}

// SaveItems replaces the user's items, creating the cart on first use.
func (s *MongoCartStore) SaveItems(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	ts := now()
	update := bson.M{
		"$set":         bson.M{"items": items, "updatedAt": ts},
		"$setOnInsert": bson.M{"userId": userID, "createdAt": ts},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	return retryOnDuplicate(func() (*models.Cart, error) {
		var cart models.Cart
		if err := s.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&cart); err != nil {
			return nil, translate(err)
		}
		return &cart, nil
	})
}

// retryOnDuplicate runs an upsert a second time when a concurrent upsert inserted the
// document first; the retry then matches it and updates instead of inserting.
func retryOnDuplicate[T any](upsert func() (*T, error)) (*T, error) {
	doc, err := upsert()
	if errors.Is(err, ErrDuplicate) {
		return upsert()
	}
	return doc, err
}
