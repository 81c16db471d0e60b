package collab

import (
	"testing"

	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyImporter, p)

	p, err = ParsePolicy("admin")
	assert.NoError(t, err)
	assert.Equal(t, PolicyAdmin, p)
	assert.Equal(t, models.RoleAdmin, p.DeciderRole())

	_, err = ParsePolicy("anyone")
	assert.Error(t, err)
}

func TestApprovalPolicy_CanDecide(t *testing.T) {
	c := &models.Collaboration{SupplierID: 1, ImporterID: 2}

	importer := auth.Principal{ID: 2, Role: models.RoleImporter}
	otherImporter := auth.Principal{ID: 3, Role: models.RoleImporter}
	supplier := auth.Principal{ID: 1, Role: models.RoleSupplier}
	admin := auth.Principal{ID: 9, Role: models.RoleAdmin}

	assert.True(t, PolicyImporter.CanDecide(importer, c))
	assert.False(t, PolicyImporter.CanDecide(otherImporter, c))
	assert.False(t, PolicyImporter.CanDecide(supplier, c))
	assert.False(t, PolicyImporter.CanDecide(admin, c))

	assert.True(t, PolicyAdmin.CanDecide(admin, c))
	assert.False(t, PolicyAdmin.CanDecide(importer, c))
}
