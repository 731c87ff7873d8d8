// models.go

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Username    string             `bson:"username,omitempty" json:"username,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	ImageURL    []string           `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserPatch lists the fields an update may touch; nil means "leave as is".
type UserPatch struct {
	Name        *string
	Email       *string
	Password    *string // already hashed
	Username    *string
	Gender      *string
	Address     *string
	PhoneNumber *string
	ImageURL    []string
}

type Shop struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Street      string             `bson:"street" json:"street"`
	City        string             `bson:"city" json:"city"`
	Province    string             `bson:"province" json:"province"`
	ImageURL    []string           `bson:"image_url" json:"image_url"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ShopPatch struct {
	UserID      *string
	Name        *string
	Description *string
	Street      *string
	City        *string
	Province    *string
	ImageURL    []string
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopID          string             `bson:"shopId" json:"shopId"`
	CategoryID      string             `bson:"categoryId" json:"categoryId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	LongDescription string             `bson:"longdescription" json:"longdescription"`
	Price           float64            `bson:"price" json:"price"`
	Stock           int                `bson:"stock" json:"stock"`
	ImageURL        []string           `bson:"image_url" json:"image_url"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ProductPatch struct {
	ShopID          *string
	CategoryID      *string
	Name            *string
	Description     *string
	LongDescription *string
	Price           *float64
	Stock           *int
	ImageURL        []string
}

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	CategoryID string
	NamePrefix string
	Limit      int64
}

type CartItem struct {
	ProductID string `bson:"productId" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

const OrderStatusProcessing = "Processing"

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Address   string             `bson:"address" json:"address"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
