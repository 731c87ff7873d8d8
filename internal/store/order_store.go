package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/models"
)

type MongoOrderStore struct {
	collection *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection(ordersCollection)}
}

func (s *MongoOrderStore) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = now()
	order.UpdatedAt = order.CreatedAt

	res, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", translate(err))
	}
	order.ID = insertedID(res)
	return nil
}

func (s *MongoOrderStore) List(ctx context.Context) ([]*models.Order, error) {
	return findMany[models.Order](ctx, s.collection, bson.M{}, newestFirst())
}

func (s *MongoOrderStore) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return findMany[models.Order](ctx, s.collection, bson.M{"userId": userID}, newestFirst())
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
