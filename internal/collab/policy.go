package collab

import (
	"fmt"

	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/models"
)

// ApprovalPolicy selects who may approve or reject a pending request.
type ApprovalPolicy string

const (
	// PolicyImporter lets only the invited importer decide.
	PolicyImporter ApprovalPolicy = "importer"
	// PolicyAdmin lets any administrator decide.
	PolicyAdmin ApprovalPolicy = "admin"
)

func ParsePolicy(s string) (ApprovalPolicy, error) {
	switch p := ApprovalPolicy(s); p {
	case PolicyImporter, PolicyAdmin:
		return p, nil
	case "":
		return PolicyImporter, nil
	}
	return "", fmt.Errorf("unknown approval policy %q", s)
}

// DeciderRole is the role allowed on the approve/reject routes.
func (p ApprovalPolicy) DeciderRole() string {
	if p == PolicyAdmin {
		return models.RoleAdmin
	}
	return models.RoleImporter
}

func (p ApprovalPolicy) CanDecide(actor auth.Principal, c *models.Collaboration) bool {
	switch p {
	case PolicyAdmin:
		return actor.Role == models.RoleAdmin
	default:
		return actor.Role == models.RoleImporter && actor.ID == c.ImporterID
	}
}
