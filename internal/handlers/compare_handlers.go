package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

type supplierRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SupplierOffer is one approved supplier's products in the compared
// category.
type SupplierOffer struct {
	Supplier supplierRef      `json:"supplier"`
	Products []models.Product `json:"products"`
}

// CompareProducts handles GET /v1/compare?categoryId=
// It groups the category's products by approved supplier and leaves out
// suppliers with nothing in the category.
func (h *Handlers) CompareProducts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if err != nil || categoryID <= 0 {
		respondError(c, apperr.Validation("categoryId query param is required"))
		return
	}

	ctx := c.Request.Context()
	supplierIDs, err := h.Repo.ApprovedSupplierIDs(ctx, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.Repo.ListProductsBySuppliers(ctx, supplierIDs, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	offers := []SupplierOffer{}
	index := make(map[int64]int)
	for _, product := range products {
		i, seen := index[product.SupplierID]
		if !seen {
			ref := supplierRef{ID: product.SupplierID}
			if product.SupplierName != nil {
				ref.Name = *product.SupplierName
			}
			if product.SupplierEmail != nil {
				ref.Email = *product.SupplierEmail
			}
			i = len(offers)
			index[product.SupplierID] = i
			offers = append(offers, SupplierOffer{Supplier: ref})
		}
		offers[i].Products = append(offers[i].Products, product)
	}

	c.JSON(http.StatusOK, gin.H{"categoryId": categoryID, "suppliers": offers})
}
