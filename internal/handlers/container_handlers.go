package handlers

import (
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/admission"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CreateContainerInput struct {
	Name      string           `json:"name" binding:"required"`
	MaxWeight *float64         `json:"maxWeight"`
	MaxVolume *float64         `json:"maxVolume"`
	MaxPrice  *decimal.Decimal `json:"maxPrice"`
}

type AddItemInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	// Quantity is range-checked by the admission service.
	Quantity int `json:"quantity"`
}

// GetContainers handles GET /v1/containers (Importer Only).
func (h *Handlers) GetContainers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	containers, err := h.Containers.List(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"containers": containers})
}

// CreateContainer handles POST /v1/containers (Importer Only).
func (h *Handlers) CreateContainer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input CreateContainerInput
	if !bindJSON(c, &input) {
		return
	}

	container, err := h.Containers.Create(c.Request.Context(), p.ID, admission.CreateInput{
		Name:      input.Name,
		MaxWeight: input.MaxWeight,
		MaxVolume: input.MaxVolume,
		MaxPrice:  input.MaxPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Container created", "container": container})
}

// GetContainer handles GET /v1/containers/:id: the container, its items
// and their totals.
func (h *Handlers) GetContainer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.Containers.Get(c.Request.Context(), id, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteContainer handles DELETE /v1/containers/:id
func (h *Handlers) DeleteContainer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Containers.Delete(c.Request.Context(), id, p.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Container deleted"})
}

// AddItemToContainer handles POST /v1/containers/:id/items
func (h *Handlers) AddItemToContainer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input AddItemInput
	if !bindJSON(c, &input) {
		return
	}

	item, err := h.Containers.AddItem(c.Request.Context(), id, p.ID, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added", "item": item})
}

// RemoveContainerItem handles DELETE /v1/containers/:id/items/:itemId
func (h *Handlers) RemoveContainerItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	if err := h.Containers.RemoveItem(c.Request.Context(), id, itemID, p.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
