package models

import "time"

// CollaborationStatus is the lifecycle state of a supplier -> importer collaboration.
type CollaborationStatus string

const (
	CollaborationPending  CollaborationStatus = "PENDING"
	CollaborationApproved CollaborationStatus = "APPROVED"
	CollaborationRejected CollaborationStatus = "REJECTED"
)

// Collaboration is the model for the 'collaborations' table.
// (supplier_id, importer_id) is unique.
type Collaboration struct {
	ID         int64               `json:"id" db:"id"`
	SupplierID int64               `json:"supplierId" db:"supplier_id"`
	ImporterID int64               `json:"importerId" db:"importer_id"`
	Status     CollaborationStatus `json:"status" db:"status"`
	CreatedAt  time.Time           `json:"createdAt" db:"created_at"`
	DecidedAt  *time.Time          `json:"decidedAt,omitempty" db:"decided_at"`

	// Joins (populated by listing queries)
	SupplierName  *string `json:"supplierName,omitempty" db:"supplier_name"`
	SupplierEmail *string `json:"supplierEmail,omitempty" db:"supplier_email"`
	ImporterName  *string `json:"importerName,omitempty" db:"importer_name"`
	ImporterEmail *string `json:"importerEmail,omitempty" db:"importer_email"`
}

// CanTransition reports whether a collaboration may move from s to next.
// Only PENDING records can be decided; APPROVED and REJECTED are final.
func (s CollaborationStatus) CanTransition(next CollaborationStatus) bool {
	return s == CollaborationPending && (next == CollaborationApproved || next == CollaborationRejected)
}

// Terminal reports whether no further transition is possible.
func (s CollaborationStatus) Terminal() bool {
	return s == CollaborationApproved || s == CollaborationRejected
}
