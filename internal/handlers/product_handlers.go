package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- Inputs ---

type CreateProductInput struct {
	Code        string           `json:"code" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	CategoryID  int64            `json:"categoryId" binding:"required,gt=0"`
	ImageURL    string           `json:"imageUrl"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Weight      *float64         `json:"weight" binding:"required,gte=0"`
	Length      *float64         `json:"length" binding:"required,gte=0"`
	Width       *float64         `json:"width" binding:"required,gte=0"`
	Height      *float64         `json:"height" binding:"required,gte=0"`
}

// UpdateProductInput is a partial update; nil fields are left alone.
type UpdateProductInput struct {
	Code        *string          `json:"code"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"categoryId" binding:"omitempty,gt=0"`
	ImageURL    *string          `json:"imageUrl"`
	Price       *decimal.Decimal `json:"price"`
	Weight      *float64         `json:"weight" binding:"omitempty,gte=0"`
	Length      *float64         `json:"length" binding:"omitempty,gte=0"`
	Width       *float64         `json:"width" binding:"omitempty,gte=0"`
	Height      *float64         `json:"height" binding:"omitempty,gte=0"`
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// validateProduct checks what binding tags cannot express.
func validateProduct(p *models.Product) error {
	switch {
	case p.Code == "":
		return apperr.Validation("code must be a non-empty string")
	case p.Name == "":
		return apperr.Validation("name must be a non-empty string")
	case p.Description == "":
		return apperr.Validation("description must be a non-empty string")
	case p.Price.IsNegative():
		return apperr.Validation("price must be greater than or equal to 0")
	case !models.FitsMoney(p.Price):
		return apperr.Validation("price must have at most 2 decimal places and not exceed " + models.MaxMoney.StringFixed(2))
	}
	return nil
}

// saveProduct maps the repository's constraint errors onto API errors.
func (h *Handlers) saveProduct(ctx context.Context, p *models.Product, create bool) error {
	var err error
	if create {
		err = h.Repo.CreateProduct(ctx, p)
	} else {
		err = h.Repo.UpdateProduct(ctx, p)
	}

	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("PRODUCT_CODE_TAKEN", "Product code must be unique per supplier")
	case errors.Is(err, repository.ErrForeignKey):
		return apperr.Validation("categoryId does not exist")
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Product not found")
	}
	return err
}

// CreateProduct handles POST /v1/products (Supplier Only)
func (h *Handlers) CreateProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product := &models.Product{
		SupplierID:  p.ID,
		CategoryID:  input.CategoryID,
		Code:        strings.TrimSpace(input.Code),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    optionalString(input.ImageURL),
		Price:       *input.Price,
		Weight:      *input.Weight,
		Length:      *input.Length,
		Width:       *input.Width,
		Height:      *input.Height,
	}
	if err := validateProduct(product); err != nil {
		respondError(c, err)
		return
	}

	if err := h.saveProduct(c.Request.Context(), product, true); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// GetProducts handles GET /v1/products. Admins see every product,
// suppliers their own.
func (h *Handlers) GetProducts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var supplierID int64
	switch p.Role {
	case models.RoleAdmin:
	case models.RoleSupplier:
		supplierID = p.ID
	default:
		respondError(c, apperr.Forbidden("Forbidden"))
		return
	}

	products, err := h.Repo.ListProducts(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct handles PATCH /v1/products/:id (Supplier Only).
// Another supplier's product answers 404, same as a missing one.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input UpdateProductInput
	if !bindJSON(c, &input) {
		return
	}

	// 1. --- Load and check ownership ---
	ctx := c.Request.Context()
	product, err := h.Repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && product.SupplierID != p.ID) {
		respondError(c, apperr.NotFound("Product not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// 2. --- Apply the changes ---
	if input.Code != nil {
		product.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.ImageURL != nil {
		product.ImageURL = optionalString(*input.ImageURL)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.Length != nil {
		product.Length = *input.Length
	}
	if input.Width != nil {
		product.Width = *input.Width
	}
	if input.Height != nil {
		product.Height = *input.Height
	}
	if err := validateProduct(product); err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Save ---
	if err := h.saveProduct(ctx, product, false); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// DeleteProduct handles DELETE /v1/products/:id (Supplier Only).
// Container items that hold the product are kept.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.Repo.DeleteProduct(c.Request.Context(), id, p.ID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperr.NotFound("Product not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetImporterProducts handles GET /v1/importer/products: the products of
// every supplier the importer has an approved collaboration with.
func (h *Handlers) GetImporterProducts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	supplierIDs, err := h.Repo.ApprovedSupplierIDs(ctx, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.Repo.ListProductsBySuppliers(ctx, supplierIDs, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
