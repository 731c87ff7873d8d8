package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

const (
	usersCollection      = "users"
	shopsCollection      = "shops"
	categoriesCollection = "categories"
	productsCollection   = "products"
	cartsCollection      = "carts"
	ordersCollection     = "orders"
)

// MongoConfig for MongoDB connection
type MongoConfig struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

// NewMongoConnection connects and pings the primary.
func NewMongoConnection(cfg MongoConfig, log logrus.FieldLogger) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.WithField("database", cfg.DBName).Info("Connecting to MongoDB")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info("Successfully connected and pinged MongoDB")
	return client, nil
}

// EnsureIndexes creates the unique indexes that back email and shop-owner uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		usersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		shopsCollection: {
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		categoriesCollection: {
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		productsCollection: {
			Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "name", Value: 1}},
		},
		cartsCollection: {
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		ordersCollection: {
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	}
	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

// objectID parses an opaque id. Malformed ids cannot name a document, so they map to ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// setIfPresent adds key to set only when the request carried the field.
func setIfPresent[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []*T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// updateByID applies $set and returns the stored document after the write.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, set bson.M) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = now()

	var doc T
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}
