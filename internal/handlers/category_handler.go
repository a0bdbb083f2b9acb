package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/models"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	stores StoreProvider
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(stores StoreProvider) *CategoryHandler {
	return &CategoryHandler{stores: stores}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string       `json:"name" binding:"required,max=100"`
	Color models.Color `json:"color" binding:"required,category_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  *string       `json:"name" binding:"omitempty,min=1,max=100"`
	Color *models.Color `json:"color" binding:"omitempty,category_color"`
}

// CategoryResponse wraps a single category
type CategoryResponse struct {
	Category models.Category `json:"category"`
}

// CategoriesResponse lists categories
type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Categories(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	category, err := store.Add(c.Request.Context(), models.NewCategory{Name: req.Name, Color: req.Color})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Category: *category})
}

// GetCategories lists the caller's categories
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoriesResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Categories(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categories, err := store.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

// UpdateCategory renames or recolors a category
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} CategoryResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Categories(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	categoryID := c.Param("id")
	if err := store.Update(ctx, categoryID, models.CategoryPatch{Name: req.Name, Color: req.Color}); err != nil {
		respondWithError(c, err)
		return
	}
	category, err := store.Get(ctx, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: *category})
}

// DeleteCategory removes a category; expenses keep their reference
// @Summary     Delete a category
// @Description Expenses that use the category are not changed and display as Uncategorized
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Categories(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
