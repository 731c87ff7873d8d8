package handlers_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-backend/internal/models"
	"marketplace-backend/internal/storage"
	"marketplace-backend/internal/store"
)

// memDB is an in-memory stand-in for the Mongo collections.
type memDB struct {
	mu         sync.Mutex
	users      []*models.User
	shops      []*models.Shop
	categories []*models.Category
	products   []*models.Product
	carts      []*models.Cart
	orders     []*models.Order
}

func indexOf[T any](items []*T, match func(*T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func cloneAll[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		out = append(out, clone(item))
	}
	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func stamp() time.Time { return time.Now().UTC() }

type userStore struct{ db *memDB }

func (s userStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if indexOf(s.db.users, func(x *models.User) bool { return x.Email == u.Email }) >= 0 {
		return store.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = stamp(), stamp()
	s.db.users = append(s.db.users, clone(u))
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.users, func(x *models.User) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.users[i]), nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.users, func(x *models.User) bool { return x.Email == email })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.users[i]), nil
}

func (s userStore) List(context.Context) ([]*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return cloneAll(s.db.users), nil
}

func (s userStore) Update(_ context.Context, id string, p *models.UserPatch) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.users, func(x *models.User) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u := s.db.users[i]
	set(&u.Name, p.Name)
	set(&u.Email, p.Email)
	set(&u.Password, p.Password)
	set(&u.Username, p.Username)
	set(&u.Gender, p.Gender)
	set(&u.Address, p.Address)
	set(&u.PhoneNumber, p.PhoneNumber)
	if p.ImageURL != nil {
		u.ImageURL = p.ImageURL
	}
	u.UpdatedAt = stamp()
	return clone(u), nil
}

func (s userStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.users, func(x *models.User) bool { return x.ID.Hex() == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.db.users = append(s.db.users[:i], s.db.users[i+1:]...)
	return nil
}

type shopStore struct{ db *memDB }

func (s shopStore) Create(_ context.Context, sh *models.Shop) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if indexOf(s.db.shops, func(x *models.Shop) bool { return x.UserID == sh.UserID }) >= 0 {
		return store.ErrDuplicate
	}
	sh.ID = primitive.NewObjectID()
	sh.CreatedAt, sh.UpdatedAt = stamp(), stamp()
	s.db.shops = append(s.db.shops, clone(sh))
	return nil
}

func (s shopStore) GetByID(_ context.Context, id string) (*models.Shop, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.shops, func(x *models.Shop) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.shops[i]), nil
}

func (s shopStore) GetByUserID(_ context.Context, userID string) (*models.Shop, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.shops, func(x *models.Shop) bool { return x.UserID == userID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.shops[i]), nil
}

func (s shopStore) List(context.Context) ([]*models.Shop, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return cloneAll(s.db.shops), nil
}

func (s shopStore) Update(_ context.Context, id string, p *models.ShopPatch) (*models.Shop, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.shops, func(x *models.Shop) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	sh := s.db.shops[i]
	set(&sh.UserID, p.UserID)
	set(&sh.Name, p.Name)
	set(&sh.Description, p.Description)
	set(&sh.Street, p.Street)
	set(&sh.City, p.City)
	set(&sh.Province, p.Province)
	if p.ImageURL != nil {
		sh.ImageURL = p.ImageURL
	}
	sh.UpdatedAt = stamp()
	return clone(sh), nil
}

func (s shopStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.shops, func(x *models.Shop) bool { return x.ID.Hex() == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.db.shops = append(s.db.shops[:i], s.db.shops[i+1:]...)
	return nil
}

type categoryStore struct{ db *memDB }

func (s categoryStore) Create(_ context.Context, cat *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	cat.ID = primitive.NewObjectID()
	cat.CreatedAt, cat.UpdatedAt = stamp(), stamp()
	s.db.categories = append(s.db.categories, clone(cat))
	return nil
}

func (s categoryStore) GetByID(_ context.Context, id string) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.categories, func(x *models.Category) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.categories[i]), nil
}

func (s categoryStore) GetByName(_ context.Context, name string) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.categories, func(x *models.Category) bool { return x.Name == name })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.categories[i]), nil
}

func (s categoryStore) List(context.Context) ([]*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return cloneAll(s.db.categories), nil
}

func (s categoryStore) Update(_ context.Context, id string, p *models.CategoryPatch) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.categories, func(x *models.Category) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	cat := s.db.categories[i]
	set(&cat.Name, p.Name)
	set(&cat.Description, p.Description)
	cat.UpdatedAt = stamp()
	return clone(cat), nil
}

func (s categoryStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.categories, func(x *models.Category) bool { return x.ID.Hex() == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.db.categories = append(s.db.categories[:i], s.db.categories[i+1:]...)
	return nil
}

type productStore struct{ db *memDB }

func (s productStore) Create(_ context.Context, p *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = stamp(), stamp()
	s.db.products = append(s.db.products, clone(p))
	return nil
}

func (s productStore) GetByID(_ context.Context, id string) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.products, func(x *models.Product) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.products[i]), nil
}

func (s productStore) List(_ context.Context, f models.ProductFilter) ([]*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*models.Product{}
	for _, p := range s.db.products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.NamePrefix != "" && !strings.HasPrefix(p.Name, f.NamePrefix) {
			continue
		}
		out = append(out, clone(p))
		if f.Limit > 0 && int64(len(out)) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s productStore) ListByShop(_ context.Context, shopID string) ([]*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*models.Product{}
	for _, p := range s.db.products {
		if p.ShopID == shopID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s productStore) Update(_ context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.products, func(x *models.Product) bool { return x.ID.Hex() == id })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	p := s.db.products[i]
	set(&p.ShopID, patch.ShopID)
	set(&p.CategoryID, patch.CategoryID)
	set(&p.Name, patch.Name)
	set(&p.Description, patch.Description)
	set(&p.LongDescription, patch.LongDescription)
	set(&p.Price, patch.Price)
	set(&p.Stock, patch.Stock)
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	p.UpdatedAt = stamp()
	return clone(p), nil
}

func (s productStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.products, func(x *models.Product) bool { return x.ID.Hex() == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.db.products = append(s.db.products[:i], s.db.products[i+1:]...)
	return nil
}

func (s productStore) AdjustStock(_ context.Context, id string, delta int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.products, func(x *models.Product) bool { return x.ID.Hex() == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.db.products[i].Stock += delta
	return nil
}

type cartStore struct{ db *memDB }

func (s cartStore) GetByUserID(_ context.Context, userID string) (*models.Cart, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.carts, func(x *models.Cart) bool { return x.UserID == userID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return clone(s.db.carts[i]), nil
}

func (s cartStore) SaveItems(_ context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i := indexOf(s.db.carts, func(x *models.Cart) bool { return x.UserID == userID })
	if i < 0 {
		s.db.carts = append(s.db.carts, &models.Cart{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: stamp()})
		i = len(s.db.carts) - 1
	}
	cart := s.db.carts[i]
	cart.Items = append([]models.CartItem(nil), items...)
	cart.UpdatedAt = stamp()
	return clone(cart), nil
}

type orderStore struct{ db *memDB }

func (s orderStore) Create(_ context.Context, o *models.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	o.ID = primitive.NewObjectID()
	o.CreatedAt, o.UpdatedAt = stamp(), stamp()
	s.db.orders = append(s.db.orders, clone(o))
	return nil
}

func (s orderStore) List(context.Context) ([]*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return cloneAll(s.db.orders), nil
}

func (s orderStore) ListByUser(_ context.Context, userID string) ([]*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*models.Order{}
	for _, o := range s.db.orders {
		if o.UserID == userID {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

// fakeUploader hands back a deterministic URL per file name.
type fakeUploader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, files []storage.File) ([]string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, fmt.Sprintf("https://storage.test/bucket/%s", f.Name))
	}
	return urls, nil
}
