package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-backend/internal/models"
)

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{collection: db.Collection(usersCollection)}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	res, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}
	user.ID = insertedID(res)
	return nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.User](ctx, s.collection, bson.M{"_id": oid})
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.collection, bson.M{"email": email})
}

func (s *MongoUserStore) List(ctx context.Context) ([]*models.User, error) {
	return findMany[models.User](ctx, s.collection, bson.M{})
}

func (s *MongoUserStore) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	return updateByID[models.User](ctx, s.collection, id, userSet(patch))
}

func (s *MongoUserStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.collection, id)
}

func userSet(p *models.UserPatch) bson.M {
	set := bson.M{}
	setIfPresent(set, "name", p.Name)
	setIfPresent(set, "email", p.Email)
	setIfPresent(set, "password", p.Password)
	setIfPresent(set, "username", p.Username)
	setIfPresent(set, "gender", p.Gender)
	setIfPresent(set, "address", p.Address)
	setIfPresent(set, "phone_number", p.PhoneNumber)
	if p.ImageURL != nil {
		set["image_url"] = p.ImageURL
	}
	return set
}
