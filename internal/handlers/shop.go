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

const (
	msgShopNotFound  = "Shop not found"
	msgShopDuplicate = "User already has a shop"
)

type ShopHandler struct {
	shops    ShopStore
	users    UserStore
	uploader Uploader
	log      logrus.FieldLogger
	images   ImagePolicy
}

func NewShopHandler(d Deps) *ShopHandler {
	return &ShopHandler{shops: d.Shops, users: d.Users, uploader: d.Uploader, log: d.Log, images: KeepFirstImage}
}

type createShopRequest struct {
	UserID      string `json:"userId" form:"userId" binding:"required"`
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	Street      string `json:"street" form:"street"`
	City        string `json:"city" form:"city"`
	Province    string `json:"province" form:"province"`
}

type updateShopRequest struct {
	UserID      *string `json:"userId" form:"userId"`
	Name        *string `json:"name" form:"name" binding:"omitempty,min=1"`
	Description *string `json:"description" form:"description"`
	Street      *string `json:"street" form:"street"`
	City        *string `json:"city" form:"city"`
	Province    *string `json:"province" form:"province"`
}

func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.shops.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, "fetching shops", err)
		return
	}
	if len(shops) == 0 {
		common.Fail(c, common.NotFound("No shop found"))
		return
	}
	common.Success(c, http.StatusOK, "", shops)
}

func (h *ShopHandler) Create(c *gin.Context) {
	var req createShopRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	if err := h.ownerAvailable(c, req.UserID, ""); err != nil {
		fail(c, h.log, "creating shop", err)
		return
	}

	urls, err := upload(c, h.uploader, middleware.UploadedFiles(c))
	if err != nil {
		fail(c, h.log, "creating shop", err)
		return
	}

	shop := &models.Shop{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Street:      req.Street,
		City:        req.City,
		Province:    req.Province,
		ImageURL:    nonNil(urls),
	}
	if err := h.shops.Create(c.Request.Context(), shop); err != nil {
		fail(c, h.log, "creating shop", duplicateAs(err, msgShopDuplicate))
		return
	}
	common.Success(c, http.StatusCreated, "Shop created successfully", shop)
}

func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.shops.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, "fetching shop", notFoundAs(err, msgShopNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", shop)
}

func (h *ShopHandler) GetByUser(c *gin.Context) {
	userID := c.Param("userId")
	ctx := c.Request.Context()

	if _, err := h.users.GetByID(ctx, userID); err != nil {
		fail(c, h.log, "fetching shop", notFoundAs(err, msgUserNotFound))
		return
	}
	shop, err := h.shops.GetByUserID(ctx, userID)
	if err != nil {
		fail(c, h.log, "fetching shop", notFoundAs(err, msgShopNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", shop)
}

// Update writes only the fields present in the request; new images keep the first upload only.
func (h *ShopHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	existing, err := h.shops.GetByID(ctx, id)
	if err != nil {
		fail(c, h.log, "updating shop", notFoundAs(err, msgShopNotFound))
		return
	}

	var req updateShopRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	if req.UserID != nil && *req.UserID != existing.UserID {
		if err := h.ownerAvailable(c, *req.UserID, id); err != nil {
			fail(c, h.log, "updating shop", err)
			return
		}
	}

	urls, err := upload(c, h.uploader, middleware.UploadedFiles(c))
	if err != nil {
		fail(c, h.log, "updating shop", err)
		return
	}

	shop, err := h.shops.Update(ctx, id, &models.ShopPatch{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Street:      req.Street,
		City:        req.City,
		Province:    req.Province,
		ImageURL:    h.images.Apply(urls),
	})
	if err != nil {
		fail(c, h.log, "updating shop", duplicateAs(notFoundAs(err, msgShopNotFound), msgShopDuplicate))
		return
	}
	common.Success(c, http.StatusOK, "Shop updated successfully", shop)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.shops.GetByID(ctx, id); err != nil {
		fail(c, h.log, "deleting shop", notFoundAs(err, msgShopNotFound))
		return
	}
	if err := h.shops.Delete(ctx, id); err != nil {
		fail(c, h.log, "deleting shop", notFoundAs(err, msgShopNotFound))
		return
	}
	common.Success(c, http.StatusOK, "Shop deleted successfully", gin.H{"id": id})
}

// ownerAvailable checks that userID exists and owns no shop other than selfID.
func (h *ShopHandler) ownerAvailable(c *gin.Context, userID, selfID string) error {
	ctx := c.Request.Context()
	if _, err := h.users.GetByID(ctx, userID); err != nil {
		return notFoundAs(err, msgUserNotFound)
	}

	owned, err := h.shops.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case owned.ID.Hex() == selfID:
		return nil
	default:
		return common.Conflict(msgShopDuplicate)
	}
}
