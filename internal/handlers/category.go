package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/models"
	"marketplace-backend/internal/store"
)

const (
	msgCategoryNotFound  = "Category not found"
	msgCategoryDuplicate = "Category already exists"
)

type CategoryHandler struct {
	categories CategoryStore
	log        logrus.FieldLogger
}

func NewCategoryHandler(d Deps) *CategoryHandler {
	return &CategoryHandler{categories: d.Categories, log: d.Log}
}

type createCategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,min=1"`
	Description *string `json:"description" form:"description"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, "fetching categories", err)
		return
	}
	if len(categories) == 0 {
		common.Fail(c, common.NotFound("No category found"))
		return
	}
	common.Success(c, http.StatusOK, "", categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	if err := h.nameAvailable(c, req.Name, ""); err != nil {
		fail(c, h.log, "creating category", err)
		return
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		fail(c, h.log, "creating category", err)
		return
	}
	common.Success(c, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, "fetching category", notFoundAs(err, msgCategoryNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	existing, err := h.categories.GetByID(ctx, id)
	if err != nil {
		fail(c, h.log, "updating category", notFoundAs(err, msgCategoryNotFound))
		return
	}

	var req updateCategoryRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	if req.Name != nil && *req.Name != existing.Name {
		if err := h.nameAvailable(c, *req.Name, id); err != nil {
			fail(c, h.log, "updating category", err)
			return
		}
	}

	category, err := h.categories.Update(ctx, id, &models.CategoryPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		fail(c, h.log, "updating category", notFoundAs(err, msgCategoryNotFound))
		return
	}
	common.Success(c, http.StatusOK, "Category updated successfully", category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.categories.GetByID(ctx, id); err != nil {
		fail(c, h.log, "deleting category", notFoundAs(err, msgCategoryNotFound))
		return
	}
	if err := h.categories.Delete(ctx, id); err != nil {
		fail(c, h.log, "deleting category", notFoundAs(err, msgCategoryNotFound))
		return
	}
	common.Success(c, http.StatusOK, "Category deleted successfully", gin.H{"id": id})
}

func (h *CategoryHandler) nameAvailable(c *gin.Context, name, selfID string) error {
	existing, err := h.categories.GetByName(c.Request.Context(), name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID.Hex() == selfID:
		return nil
	default:
		return common.Conflict(msgCategoryDuplicate)
	}
}
