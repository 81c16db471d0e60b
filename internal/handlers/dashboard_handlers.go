package handlers

import (
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the counters for the caller's dashboard.
// GET /v1/dashboard
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var (
		stats any
		err   error
	)
	switch p.Role {
	case models.RoleAdmin:
		stats, err = h.Repo.AdminStats(ctx)
	case models.RoleSupplier:
		stats, err = h.Repo.SupplierStats(ctx, p.ID)
	case models.RoleImporter:
		stats, err = h.Repo.ImporterStats(ctx, p.ID)
	default:
		err = apperr.Forbidden("Unknown role")
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": p.Role, "stats": stats})
}
