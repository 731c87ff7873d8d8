package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/models"
)

const (
	msgProductNotFound = "Product not found"
	defaultPageSize    = 15
)

type ProductHandler struct {
	products   ProductStore
	categories CategoryStore
	shops      ShopStore
	uploader   Uploader
	log        logrus.FieldLogger
	images     ImagePolicy
	pageSize   int64
}

func NewProductHandler(d Deps) *ProductHandler {
	pageSize := d.ProductPageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ProductHandler{
		products:   d.Products,
		categories: d.Categories,
		shops:      d.Shops,
		uploader:   d.Uploader,
		log:        d.Log,
		images:     ReplaceImages,
		pageSize:   pageSize,
	}
}

type createProductRequest struct {
	ShopID          string  `json:"shopId" form:"shopId" binding:"required"`
	CategoryID      string  `json:"categoryId" form:"categoryId" binding:"required"`
	Name            string  `json:"name" form:"name" binding:"required"`
	Description     string  `json:"description" form:"description"`
	LongDescription string  `json:"longdescription" form:"longdescription"`
	Price           float64 `json:"price" form:"price" binding:"gte=0"`
	Stock           int     `json:"stock" form:"stock" binding:"gte=0"`
}

type updateProductRequest struct {
	ShopID          *string  `json:"shopId" form:"shopId"`
	CategoryID      *string  `json:"categoryId" form:"categoryId"`
	Name            *string  `json:"name" form:"name" binding:"omitempty,min=1"`
	Description     *string  `json:"description" form:"description"`
	LongDescription *string  `json:"longdescription" form:"longdescription"`
	Price           *float64 `json:"price" form:"price" binding:"omitempty,gte=0"`
	Stock           *int     `json:"stock" form:"stock" binding:"omitempty,gte=0"`
}

// List filters by category name and name prefix, capped at one page.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.ProductFilter{NamePrefix: c.Query("name"), Limit: h.pageSize}

	if name := c.Query("category"); name != "" {
		category, err := h.categories.GetByName(ctx, name)
		if err != nil {
			fail(c, h.log, "fetching products", notFoundAs(err, msgCategoryNotFound))
			return
		}
		filter.CategoryID = category.ID.Hex()
	}

	products, err := h.products.List(ctx, filter)
	if err != nil {
		fail(c, h.log, "fetching products", err)
		return
	}
	if len(products) == 0 {
		common.Fail(c, common.NotFound("No product found matching the criteria"))
		return
	}
	common.Success(c, http.StatusOK, "", products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	ctx := c.Request.Context()

	if _, err := h.categories.GetByID(ctx, req.CategoryID); err != nil {
		fail(c, h.log, "creating product", notFoundAs(err, msgCategoryNotFound))
		return
	}
	if _, err := h.shops.GetByID(ctx, req.ShopID); err != nil {
		fail(c, h.log, "creating product", notFoundAs(err, msgShopNotFound))
		return
	}

	urls, err := upload(c, h.uploader, middleware.UploadedFiles(c))
	if err != nil {
		fail(c, h.log, "creating product", err)
		return
	}

	product := &models.Product{
		ShopID:          req.ShopID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		Stock:           req.Stock,
		ImageURL:        nonNil(urls),
	}
	if err := h.products.Create(ctx, product); err != nil {
		fail(c, h.log, "creating product", err)
		return
	}
	common.Success(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, "fetching product", notFoundAs(err, msgProductNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", product)
}

func (h *ProductHandler) GetByShop(c *gin.Context) {
	shopID := c.Param("shopId")
	ctx := c.Request.Context()

	if _, err := h.shops.GetByID(ctx, shopID); err != nil {
		fail(c, h.log, "fetching products", notFoundAs(err, msgShopNotFound))
		return
	}
	products, err := h.products.ListByShop(ctx, shopID)
	if err != nil {
		fail(c, h.log, "fetching products", err)
		return
	}
	if len(products) == 0 {
		common.Fail(c, common.NotFound("No product found for this shop"))
		return
	}
	common.Success(c, http.StatusOK, "", products)
}

// Update writes only the fields present in the request; new images replace the stored set.
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.products.GetByID(ctx, id); err != nil {
		fail(c, h.log, "updating product", notFoundAs(err, msgProductNotFound))
		return
	}

	var req updateProductRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	if req.CategoryID != nil {
		if _, err := h.categories.GetByID(ctx, *req.CategoryID); err != nil {
			fail(c, h.log, "updating product", notFoundAs(err, msgCategoryNotFound))
			return
		}
	}
	if req.ShopID != nil {
		if _, err := h.shops.GetByID(ctx, *req.ShopID); err != nil {
			fail(c, h.log, "updating product", notFoundAs(err, msgShopNotFound))
			return
		}
	}

	urls, err := upload(c, h.uploader, middleware.UploadedFiles(c))
	if err != nil {
		fail(c, h.log, "updating product", err)
		return
	}

	product, err := h.products.Update(ctx, id, &models.ProductPatch{
		ShopID:          req.ShopID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		Stock:           req.Stock,
		ImageURL:        h.images.Apply(urls),
	})
	if err != nil {
		fail(c, h.log, "updating product", notFoundAs(err, msgProductNotFound))
		return
	}
	common.Success(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.products.GetByID(ctx, id); err != nil {
		fail(c, h.log, "deleting product", notFoundAs(err, msgProductNotFound))
		return
	}
	if err := h.products.Delete(ctx, id); err != nil {
		fail(c, h.log, "deleting product", notFoundAs(err, msgProductNotFound))
		return
	}
	common.Success(c, http.StatusOK, "Product deleted successfully", gin.H{"id": id})
}
