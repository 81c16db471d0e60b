package handlers

import (
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

type RequestCollaborationInput struct {
	ImporterID int64 `json:"importerId" binding:"required,gt=0"`
}

// GetCollaborations handles GET /v1/collaborations for any role.
func (h *Handlers) GetCollaborations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	collaborations, err := h.Collabs.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborations": collaborations})
}

// GetImporters handles GET /v1/collaborations/importers (Supplier Only).
func (h *Handlers) GetImporters(c *gin.Context) {
	importers, err := h.Collabs.ListImporters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"importers": importers})
}

// RequestCollaboration handles POST /v1/collaborations/request (Supplier Only).
func (h *Handlers) RequestCollaboration(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input RequestCollaborationInput
	if !bindJSON(c, &input) {
		return
	}

	collaboration, err := h.Collabs.Request(c.Request.Context(), p.ID, input.ImporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Collaboration requested",
		"collaboration": collaboration,
	})
}

// ApproveCollaboration handles PATCH /v1/collaborations/:id/approve
func (h *Handlers) ApproveCollaboration(c *gin.Context) {
	h.decideCollaboration(c, models.CollaborationApproved)
}

// RejectCollaboration handles PATCH /v1/collaborations/:id/reject
func (h *Handlers) RejectCollaboration(c *gin.Context) {
	h.decideCollaboration(c, models.CollaborationRejected)
}

func (h *Handlers) decideCollaboration(c *gin.Context, decision models.CollaborationStatus) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	collaboration, err := h.Collabs.Decide(c.Request.Context(), id, p, decision)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Collaboration " + string(decision),
		"collaboration": collaboration,
	})
}
