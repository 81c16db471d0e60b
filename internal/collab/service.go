package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
)

const notificationLink = "/collaborations"

// Service runs the collaboration state machine.
type Service struct {
	repo   *repository.Repository
	policy ApprovalPolicy
	now    func() time.Time
}

func NewService(repo *repository.Repository, policy ApprovalPolicy) *Service {
	return &Service{repo: repo, policy: policy, now: time.Now}
}

func (s *Service) Policy() ApprovalPolicy {
	return s.policy
}

// Request opens a PENDING collaboration from supplierID to importerID
// and notifies the importer.
func (s *Service) Request(ctx context.Context, supplierID, importerID int64) (*models.Collaboration, error) {
	if importerID <= 0 {
		return nil, apperr.Validation("importerId is required")
	}
	if supplierID == importerID {
		return nil, apperr.Validation("Cannot collaborate with yourself")
	}

	var c *models.Collaboration
	err := s.repo.WithTx(ctx, func(tx *repository.Tx) error {
		// 1. --- Check the target ---
		importer, err := tx.GetUser(ctx, importerID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !importer.Active) {
			return apperr.NotFound("Importer not found")
		}
		if err != nil {
			return err
		}
		if importer.Role != models.RoleImporter {
			return apperr.Validation("Target user is not an importer")
		}

		supplier, err := tx.GetUser(ctx, supplierID)
		if err != nil {
			return fmt.Errorf("load supplier: %w", err)
		}

		// 2. --- Insert (unique pair) ---
		c = &models.Collaboration{SupplierID: supplierID, ImporterID: importerID, Status: models.CollaborationPending}
		if err := tx.CreateCollaboration(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.Conflict("COLLABORATION_EXISTS", "Collaboration already exists")
			}
			return err
		}

		// 3. --- Notify the importer ---
		msg := fmt.Sprintf("%s has requested to collaborate with you.", supplier.Name)
		return tx.CreateNotification(ctx, importerID, msg, notificationLink)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Decide approves or rejects a PENDING collaboration on behalf of actor.
func (s *Service) Decide(ctx context.Context, id int64, actor auth.Principal, decision models.CollaborationStatus) (*models.Collaboration, error) {
	if decision != models.CollaborationApproved && decision != models.CollaborationRejected {
		return nil, apperr.Validation("Decision must be APPROVED or REJECTED")
	}

	var c *models.Collaboration
	err := s.repo.WithTx(ctx, func(tx *repository.Tx) error {
		var err error
		c, err = tx.LockCollaboration(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Collaboration not found")
		}
		if err != nil {
			return err
		}

		if !s.policy.CanDecide(actor, c) {
			return apperr.Forbidden("You are not allowed to decide this collaboration")
		}
		if !c.Status.CanTransition(decision) {
			return apperr.InvalidState("Only PENDING collaborations can be approved/rejected")
		}

		decidedAt := s.now().UTC()
		if err := tx.UpdateCollaborationStatus(ctx, c.ID, decision, decidedAt); err != nil {
			return err
		}
		c.Status = decision
		c.DecidedAt = &decidedAt

		msg := fmt.Sprintf("Your collaboration request was %s.", strings.ToLower(string(decision)))
		return tx.CreateNotification(ctx, c.SupplierID, msg, notificationLink)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the collaborations visible to p, newest first.
func (s *Service) List(ctx context.Context, p auth.Principal) ([]models.Collaboration, error) {
	var f repository.CollaborationFilter
	switch p.Role {
	case models.RoleAdmin:
	case models.RoleSupplier:
		f.SupplierID = p.ID
	case models.RoleImporter:
		f.ImporterID = p.ID
	default:
		return nil, apperr.Forbidden("Unknown role")
	}
	return s.repo.ListCollaborations(ctx, f)
}

// ListImporters returns the active importers a supplier can invite.
func (s *Service) ListImporters(ctx context.Context) ([]models.User, error) {
	return s.repo.ListActiveImporters(ctx)
}
