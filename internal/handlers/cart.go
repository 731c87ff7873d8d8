package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/models"
	"marketplace-backend/internal/store"
)

const msgCartNotFound = "Cart not found"

// CartHandler works on the cart of the authenticated user.
type CartHandler struct {
	carts    CartStore
	products ProductStore
	log      logrus.FieldLogger
}

func NewCartHandler(d Deps) *CartHandler {
	return &CartHandler{carts: d.Carts, products: d.Products, log: d.Log}
}

type addToCartRequest struct {
	ProductID string `json:"productId" form:"productId" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"required,min=1"`
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" form:"productId" binding:"required"`
}

func (h *CartHandler) View(c *gin.Context) {
	cart, err := h.carts.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.log, "fetching cart", notFoundAs(err, msgCartNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", cart)
}

// Add merges the quantity into an existing line for the same product.
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	if _, err := h.products.GetByID(ctx, req.ProductID); err != nil {
		fail(c, h.log, "adding to cart", notFoundAs(err, msgProductNotFound))
		return
	}

	var items []models.CartItem
	cart, err := h.carts.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		items = cart.Items
	case !errors.Is(err, store.ErrNotFound):
		fail(c, h.log, "adding to cart", err)
		return
	}

	found := false
	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	cart, err = h.carts.SaveItems(ctx, userID, items)
	if err != nil {
		fail(c, h.log, "adding to cart", err)
		return
	}
	common.Success(c, http.StatusOK, "Product added to cart", cart)
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req removeFromCartRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	cart, err := h.carts.GetByUserID(ctx, userID)
	if err != nil {
		fail(c, h.log, "removing from cart", notFoundAs(err, msgCartNotFound))
		return
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != req.ProductID {
			items = append(items, item)
		}
	}
	if len(items) == len(cart.Items) {
		common.Fail(c, common.NotFound("Product not found in cart"))
		return
	}

	cart, err = h.carts.SaveItems(ctx, userID, items)
	if err != nil {
		fail(c, h.log, "removing from cart", err)
		return
	}
	common.Success(c, http.StatusOK, "Product removed from cart", cart)
}
