package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/models"
	"marketplace-backend/internal/store"
)

type OrderHandler struct {
	orders   OrderStore
	carts    CartStore
	products ProductStore
	users    UserStore
	log      logrus.FieldLogger
}

func NewOrderHandler(d Deps) *OrderHandler {
	return &OrderHandler{orders: d.Orders, carts: d.Carts, products: d.Products, users: d.Users, log: d.Log}
}

type placeOrderRequest struct {
	Address string `json:"address" form:"address"`
}

// Place turns the caller's cart into an order, decrements stock and empties the cart.
// None of these writes are transactional.
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if c.Request.ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			common.Fail(c, err)
			return
		}
	}
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	cart, err := h.carts.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, h.log, "placing order", err)
		return
	}
	if cart == nil || len(cart.Items) == 0 {
		common.Fail(c, common.Conflict("Cart is empty"))
		return
	}

	order := &models.Order{
		UserID:  userID,
		Address: req.Address,
		Status:  models.OrderStatusProcessing,
		Items:   make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		product, err := h.products.GetByID(ctx, item.ProductID)
		if err != nil {
			fail(c, h.log, "placing order", notFoundAs(err, msgProductNotFound))
			return
		}
		if product.Stock < item.Quantity {
			common.Fail(c, common.Conflict(fmt.Sprintf("Insufficient stock for %s", product.Name)))
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		order.Total += product.Price * float64(item.Quantity)
	}

	if err := h.orders.Create(ctx, order); err != nil {
		fail(c, h.log, "placing order", err)
		return
	}

	for _, item := range order.Items {
		if err := h.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			h.log.WithError(err).WithFields(logrus.Fields{
				"order_id":   order.ID.Hex(),
				"product_id": item.ProductID,
			}).Warn("Failed to decrement stock")
		}
	}
	if _, err := h.carts.SaveItems(ctx, userID, nil); err != nil {
		h.log.WithError(err).WithField("order_id", order.ID.Hex()).Warn("Failed to clear cart")
	}

	common.Success(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, "fetching orders", err)
		return
	}
	if len(orders) == 0 {
		common.Fail(c, common.NotFound("No order found"))
		return
	}
	common.Success(c, http.StatusOK, "", orders)
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID := c.Param("userId")
	ctx := c.Request.Context()

	if _, err := h.users.GetByID(ctx, userID); err != nil {
		fail(c, h.log, "fetching orders", notFoundAs(err, msgUserNotFound))
		return
	}
	orders, err := h.orders.ListByUser(ctx, userID)
	if err != nil {
		fail(c, h.log, "fetching orders", err)
		return
	}
	if len(orders) == 0 {
		common.Fail(c, common.NotFound("No order found for this user"))
		return
	}
	common.Success(c, http.StatusOK, "", orders)
}
