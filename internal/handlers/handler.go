// Package handlers maps each REST resource onto the document store.
package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/models"
	"marketplace-backend/internal/storage"
	"marketplace-backend/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ShopStore interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	GetByUserID(ctx context.Context, userID string) (*models.Shop, error)
	List(ctx context.Context) ([]*models.Shop, error)
	Update(ctx context.Context, id string, patch *models.ShopPatch) (*models.Shop, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]*models.Product, error)
	Update(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) error
}

type CartStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	SaveItems(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
}

// Uploader stores attachments and returns their URLs in input order.
type Uploader interface {
	Upload(ctx context.Context, files []storage.File) ([]string, error)
}

type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// Deps are the collaborators shared by every controller.
type Deps struct {
	Users      UserStore
	Shops      ShopStore
	Categories CategoryStore
	Products   ProductStore
	Carts      CartStore
	Orders     OrderStore
	Uploader   Uploader
	Tokens     TokenIssuer
	Log        logrus.FieldLogger

	ProductPageSize int64
}

// ImagePolicy decides what an update stores in image_url when files were attached.
// Without attachments the stored images are always kept.
type ImagePolicy int

const (
	ReplaceImages ImagePolicy = iota
	KeepFirstImage
)

// Apply returns nil when nothing should change.
func (p ImagePolicy) Apply(uploaded []string) []string {
	if len(uploaded) == 0 {
		return nil
	}
	if p == KeepFirstImage {
		return uploaded[:1]
	}
	return uploaded
}

// fail logs errors that collapse to 500 and writes the envelope.
func fail(c *gin.Context, log logrus.FieldLogger, op string, err error) {
	if common.StatusOf(err) >= 500 {
		log.WithError(err).WithField("path", c.FullPath()).Error("Error " + op)
	}
	common.Fail(c, err)
}

// notFoundAs maps store.ErrNotFound onto a 404 carrying msg; other errors pass through.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return common.NotFound(msg)
	}
	return err
}

func bind(c *gin.Context, req any) error {
	if err := c.ShouldBind(req); err != nil {
		return common.Invalid(err)
	}
	return nil
}

// upload sends the request's attachments, if any, to the bucket.
func upload(c *gin.Context, up Uploader, files []storage.File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	return up.Upload(c.Request.Context(), files)
}

func nonNil(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
