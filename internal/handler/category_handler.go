package handler

import (
	"net/http"
	"strconv"

	"rentalhub/internal/model"
	"rentalhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *repository.CategoryRepository
}

func NewCategoryHandler(categories *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

func toCategoryResponses(categories []model.Category) []CategoryResponse {
	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = CategoryResponse{
			ID:       category.ID,
			Name:     category.Name,
			ParentID: category.ParentID,
		}
	}
	return response
}

// GetAll returns the top-level catalog categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categories.GetTopLevel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, toCategoryResponses(categories))
}

// GetSubcategories returns subcategories, optionally for one parent category
func (h *CategoryHandler) GetSubcategories(c *gin.Context) {
	var parentID *uint
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		parsed := uint(id)
		parentID = &parsed
	}

	categories, err := h.categories.GetSubcategories(c.Request.Context(), parentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subcategories"})
		return
	}

	c.JSON(http.StatusOK, toCategoryResponses(categories))
}
