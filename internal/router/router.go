package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/handlers"
	"marketplace-backend/internal/middleware"
)

// imageField is the multipart field that carries attachments.
const imageField = "image"

type Options struct {
	Tokens           middleware.TokenParser
	MaxFileSize      int64
	CorsOrigins      []string
	AllowCredentials bool
	Log              logrus.FieldLogger
}

// New builds the engine with every route of the API.
func New(d handlers.Deps, opts Options) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = opts.MaxFileSize
	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Log), cors.New(corsConfig(opts)))
	r.NoRoute(common.NoRoute)

	users := handlers.NewUserHandler(d)
	shops := handlers.NewShopHandler(d)
	categories := handlers.NewCategoryHandler(d)
	products := handlers.NewProductHandler(d)
	cart := handlers.NewCartHandler(d)
	orders := handlers.NewOrderHandler(d)

	authed := middleware.Auth(opts.Tokens)
	files := middleware.Files(imageField, opts.MaxFileSize)

	r.GET("/health", func(c *gin.Context) {
		common.Success(c, http.StatusOK, "ok", nil)
	})

	// Auth
	r.POST("/register", users.Register)
	r.POST("/login", users.Login)

	r.GET("/users", authed, users.List)
	r.GET("/users/:id", authed, users.Get)
	r.PUT("/users/:id", authed, files, users.Update)
	r.DELETE("/users/:id", authed, users.Delete)

	r.GET("/shops", authed, shops.List)
	r.GET("/shops/user/:userId", authed, shops.GetByUser)
	r.POST("/shops", authed, files, shops.Create)
	r.GET("/shops/:id", authed, shops.Get)
	r.PUT("/shops/:id", authed, files, shops.Update)
	r.DELETE("/shops/:id", authed, shops.Delete)

	r.GET("/categories", authed, categories.List)
	r.POST("/categories", authed, categories.Create)
	r.GET("/categories/:id", authed, categories.Get)
	r.PUT("/categories/:id", authed, categories.Update)
	r.DELETE("/categories/:id", authed, categories.Delete)

	r.GET("/products", authed, products.List)
	r.GET("/products/shop/:shopId", authed, products.GetByShop)
	r.POST("/products", authed, files, products.Create)
	r.GET("/products/:id", authed, products.Get)
	r.PUT("/products/:id", authed, files, products.Update)
	r.DELETE("/products/:id", authed, products.Delete)

	r.POST("/cart", authed, cart.Add)
	r.DELETE("/cart", authed, cart.Remove)
	r.GET("/cart", authed, cart.View)

	r.POST("/order", authed, orders.Place)
	r.GET("/order", authed, orders.List)
	r.GET("/orders/user/:userId", authed, orders.ListByUser)

	return r
}

func corsConfig(opts Options) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: opts.AllowCredentials,
	}
	if len(opts.CorsOrigins) == 0 || (len(opts.CorsOrigins) == 1 && opts.CorsOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		// gin-contrib/cors rejects AllowAllOrigins together with credentials
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = opts.CorsOrigins
	}
	return cfg
}
