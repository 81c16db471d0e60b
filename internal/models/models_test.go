package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCollaborationStatus_CanTransition(t *testing.T) {
	all := []CollaborationStatus{CollaborationPending, CollaborationApproved, CollaborationRejected}

	for _, from := range all {
		for _, to := range all {
			want := from == CollaborationPending && to != CollaborationPending
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CollaborationPending.Terminal())
	assert.True(t, CollaborationApproved.Terminal())
	assert.True(t, CollaborationRejected.Terminal())
}

func TestPassword(t *testing.T) {
	var p Password
	assert.NoError(t, p.Set("s3cret-pass"))

	ok, err := p.Matches("s3cret-pass")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestProductSummary_NilDimensions(t *testing.T) {
	var p *ProductSummary
	assert.Nil(t, p.Dimensions())

	p = NewProductSummary(1, 2, "Crate", decimal.RequireFromString("4.50"), 3, 100, 100, 100)
	assert.InDelta(t, 1.0, p.Volume, 1e-12)
	assert.InDelta(t, 1.0, p.Dimensions().Volume(), 1e-12)
}
