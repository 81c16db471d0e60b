// Package collab implements the supplier/importer collaboration workflow
// and the gate that admission consults before packing a supplier's goods.
package collab

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
)

// Lookup finds the collaboration record for a supplier/importer pair.
// It returns repository.ErrNotFound when there is none.
type Lookup interface {
	CollaborationBetween(ctx context.Context, supplierID, importerID int64) (*models.Collaboration, error)
}

// Gate decides whether an importer may handle a supplier's products.
// Nothing is cached; every call reads the current record.
type Gate struct {
	lookup Lookup
}

func NewGate(lookup Lookup) *Gate {
	return &Gate{lookup: lookup}
}

// IsAuthorized is true iff an APPROVED collaboration exists.
func (g *Gate) IsAuthorized(ctx context.Context, importerID, supplierID int64) (bool, error) {
	c, err := g.lookup.CollaborationBetween(ctx, supplierID, importerID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("collaboration lookup: %w", err)
	}
	return c.Status == models.CollaborationApproved, nil
}
