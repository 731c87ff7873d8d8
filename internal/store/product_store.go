package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/models"
)

// prefixUpperBound closes a name-prefix range; U+F8FF sorts after ordinary characters.
const prefixUpperBound = "\uf8ff"

type MongoProductStore struct {
	collection *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{collection: db.Collection(productsCollection)}
}

func (s *MongoProductStore) Create(ctx context.Context, product *models.Product) error {
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt

	res, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	product.ID = insertedID(res)
	return nil
}

func (s *MongoProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.Product](ctx, s.collection, bson.M{"_id": oid})
}

func (s *MongoProductStore) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	return findMany[models.Product](ctx, s.collection, productQuery(filter), opts)
}

func (s *MongoProductStore) ListByShop(ctx context.Context, shopID string) ([]*models.Product, error) {
	return findMany[models.Product](ctx, s.collection, bson.M{"shopId": shopID})
}

func (s *MongoProductStore) Update(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	return updateByID[models.Product](ctx, s.collection, id, productSet(patch))
}

func (s *MongoProductStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}

// AdjustStock adds delta to the product's stock. The result may go below zero.
func (s *MongoProductStore) AdjustStock(ctx context.Context, id string, delta int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func productQuery(f models.ProductFilter) bson.M {
	query := bson.M{}
	if f.CategoryID != "" {
		query["categoryId"] = f.CategoryID
	}
	if f.NamePrefix != "" {
		query["name"] = bson.M{"$gte": f.NamePrefix, "$lt": f.NamePrefix + prefixUpperBound}
	}
	return query
}

func productSet(p *models.ProductPatch) bson.M {
	set := bson.M{}
	setIfPresent(set, "shopId", p.ShopID)
	setIfPresent(set, "categoryId", p.CategoryID)
	setIfPresent(set, "name", p.Name)
	setIfPresent(set, "description", p.Description)
	setIfPresent(set, "longdescription", p.LongDescription)
	setIfPresent(set, "price", p.Price)
	setIfPresent(set, "stock", p.Stock)
	if p.ImageURL != nil {
		set["image_url"] = p.ImageURL
	}
	return set
}
