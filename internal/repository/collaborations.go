package repository

import (
	"context"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
)

const collaborationColumns = `id, supplier_id, importer_id, status, created_at, decided_at`

// CollaborationFilter narrows ListCollaborations. Zero fields match all.
type CollaborationFilter struct {
	SupplierID int64
	ImporterID int64
}

// CreateCollaboration returns ErrDuplicate when the pair already exists.
func (s *Store) CreateCollaboration(ctx context.Context, c *models.Collaboration) error {
	c.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx, `
		INSERT INTO collaborations (supplier_id, importer_id, status, created_at)
		VALUES (?, ?, ?, ?)`,
		c.SupplierID, c.ImporterID, c.Status, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Store) GetCollaboration(ctx context.Context, id int64) (*models.Collaboration, error) {
	var c models.Collaboration
	if err := s.get(ctx, &c, `SELECT `+collaborationColumns+` FROM collaborations WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// CollaborationBetween returns the record for a supplier/importer pair.
func (s *Store) CollaborationBetween(ctx context.Context, supplierID, importerID int64) (*models.Collaboration, error) {
	var c models.Collaboration
	err := s.get(ctx, &c, `
		SELECT `+collaborationColumns+`
		FROM collaborations
		WHERE supplier_id = ? AND importer_id = ?`,
		supplierID, importerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCollaborationStatus records a decision.
func (s *Store) UpdateCollaborationStatus(ctx context.Context, id int64, status models.CollaborationStatus, decidedAt time.Time) error {
	return s.execOne(ctx, `UPDATE collaborations SET status = ?, decided_at = ? WHERE id = ?`,
		status, decidedAt, id)
}

// ListCollaborations returns matching records with both parties' names,
// newest first.
func (s *Store) ListCollaborations(ctx context.Context, f CollaborationFilter) ([]models.Collaboration, error) {
	query := `
		SELECT
			c.id, c.supplier_id, c.importer_id, c.status, c.created_at, c.decided_at,
			su.name AS supplier_name, su.email AS supplier_email,
			im.name AS importer_name, im.email AS importer_email
		FROM collaborations c
		JOIN users su ON su.id = c.supplier_id
		JOIN users im ON im.id = c.importer_id
		WHERE 1 = 1`
	var args []any
	if f.SupplierID > 0 {
		query += ` AND c.supplier_id = ?`
		args = append(args, f.SupplierID)
	}
	if f.ImporterID > 0 {
		query += ` AND c.importer_id = ?`
		args = append(args, f.ImporterID)
	}
	query += ` ORDER BY c.created_at DESC, c.id DESC`

	collaborations := []models.Collaboration{}
	err := s.sel(ctx, &collaborations, query, args...)
	return collaborations, err
}

// ApprovedSupplierIDs lists the suppliers whose products the importer
// may see.
func (s *Store) ApprovedSupplierIDs(ctx context.Context, importerID int64) ([]int64, error) {
	ids := []int64{}
	err := s.sel(ctx, &ids, `
		SELECT supplier_id FROM collaborations
		WHERE importer_id = ? AND status = ?
		ORDER BY supplier_id`,
		importerID, models.CollaborationApproved)
	return ids, err
}

// LockCollaboration reads a collaboration and locks its row until the
// transaction ends.
func (t *Tx) LockCollaboration(ctx context.Context, id int64) (*models.Collaboration, error) {
	var c models.Collaboration
	err := t.get(ctx, &c, `SELECT `+collaborationColumns+` FROM collaborations WHERE id = ?`+t.dialect.ForUpdate, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
