package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory (Admin Only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		respondError(c, apperr.Validation("name is required"))
		return
	}

	category := &models.Category{Name: name, Slug: slug.Make(name)}
	if err := h.Repo.CreateCategory(c.Request.Context(), category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, apperr.Conflict("CATEGORY_EXISTS", "Category with this name already exists"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// GetAllCategories (Public)
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// DeleteCategory (Admin Only). Categories still used by products stay.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.Repo.DeleteCategory(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, apperr.NotFound("Category not found"))
		return
	case errors.Is(err, repository.ErrForeignKey):
		respondError(c, apperr.Conflict("CATEGORY_IN_USE", "Category is used by products"))
		return
	case err != nil:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
