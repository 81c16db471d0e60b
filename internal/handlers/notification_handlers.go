package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/gin-gonic/gin"
)

// GetMyNotifications is the handler for GET /v1/notifications
// It returns the caller's latest notifications, unread first.
func (h *Handlers) GetMyNotifications(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	notifications, err := h.Repo.ListNotifications(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationAsRead is the handler for PATCH /v1/notifications/:id/read
// Only the owner may mark a notification; anyone else gets 404.
func (h *Handlers) MarkNotificationAsRead(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.Repo.MarkNotificationRead(c.Request.Context(), id, p.ID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperr.NotFound("Notification not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
