package repository

import (
	"context"

	"github.com/01moynul/containerhub-golang/internal/models"
)

type AdminStats struct {
	Suppliers              int `json:"suppliers" db:"suppliers"`
	Importers              int `json:"importers" db:"importers"`
	Products               int `json:"products" db:"products"`
	Categories             int `json:"categories" db:"categories"`
	PendingCollaborations  int `json:"pendingCollaborations" db:"pending_collaborations"`
	ApprovedCollaborations int `json:"approvedCollaborations" db:"approved_collaborations"`
}

type SupplierStats struct {
	Products               int `json:"products" db:"products"`
	PendingCollaborations  int `json:"pendingCollaborations" db:"pending_collaborations"`
	ApprovedCollaborations int `json:"approvedCollaborations" db:"approved_collaborations"`
	UnreadNotifications    int `json:"unreadNotifications" db:"unread_notifications"`
}

type ImporterStats struct {
	Containers            int `json:"containers" db:"containers"`
	ApprovedSuppliers     int `json:"approvedSuppliers" db:"approved_suppliers"`
	PendingCollaborations int `json:"pendingCollaborations" db:"pending_collaborations"`
	UnreadNotifications   int `json:"unreadNotifications" db:"unread_notifications"`
}

func (s *Store) AdminStats(ctx context.Context) (*AdminStats, error) {
	var st AdminStats
	err := s.get(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = ?) AS suppliers,
			(SELECT COUNT(*) FROM users WHERE role = ?) AS importers,
			(SELECT COUNT(*) FROM products) AS products,
			(SELECT COUNT(*) FROM categories) AS categories,
			(SELECT COUNT(*) FROM collaborations WHERE status = ?) AS pending_collaborations,
			(SELECT COUNT(*) FROM collaborations WHERE status = ?) AS approved_collaborations`,
		models.RoleSupplier, models.RoleImporter, models.CollaborationPending, models.CollaborationApproved)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) SupplierStats(ctx context.Context, supplierID int64) (*SupplierStats, error) {
	var st SupplierStats
	err := s.get(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM products WHERE supplier_id = ?) AS products,
			(SELECT COUNT(*) FROM collaborations WHERE supplier_id = ? AND status = ?) AS pending_collaborations,
			(SELECT COUNT(*) FROM collaborations WHERE supplier_id = ? AND status = ?) AS approved_collaborations,
			(SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?) AS unread_notifications`,
		supplierID,
		supplierID, models.CollaborationPending,
		supplierID, models.CollaborationApproved,
		supplierID, false)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) ImporterStats(ctx context.Context, importerID int64) (*ImporterStats, error) {
	var st ImporterStats
	err := s.get(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM containers WHERE importer_id = ?) AS containers,
			(SELECT COUNT(*) FROM collaborations WHERE importer_id = ? AND status = ?) AS approved_suppliers,
			(SELECT COUNT(*) FROM collaborations WHERE importer_id = ? AND status = ?) AS pending_collaborations,
			(SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?) AS unread_notifications`,
		importerID,
		importerID, models.CollaborationApproved,
		importerID, models.CollaborationPending,
		importerID, false)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
