package collab

import (
	"context"
	"errors"
	"testing"

	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGate_IsAuthorized(t *testing.T) {
	tests := []struct {
		name    string
		record  *models.Collaboration
		err     error
		want    bool
		wantErr bool
	}{
		{name: "approved", record: &models.Collaboration{Status: models.CollaborationApproved}, want: true},
		{name: "pending", record: &models.Collaboration{Status: models.CollaborationPending}},
		{name: "rejected", record: &models.Collaboration{Status: models.CollaborationRejected}},
		{name: "no record", err: repository.ErrNotFound},
		{name: "lookup failure", err: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookup := NewMockLookup(ctrl)
			// Arguments are (supplier, importer); the gate takes (importer, supplier).
			lookup.EXPECT().CollaborationBetween(gomock.Any(), int64(20), int64(10)).Return(tt.record, tt.err)

			got, err := NewGate(lookup).IsAuthorized(context.Background(), 10, 20)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGate_NoCaching(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := NewMockLookup(ctrl)

	gomock.InOrder(
		lookup.EXPECT().CollaborationBetween(gomock.Any(), int64(2), int64(1)).
			Return(&models.Collaboration{Status: models.CollaborationApproved}, nil),
		lookup.EXPECT().CollaborationBetween(gomock.Any(), int64(2), int64(1)).
			Return(&models.Collaboration{Status: models.CollaborationRejected}, nil),
	)

	gate := NewGate(lookup)
	ok, err := gate.IsAuthorized(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.IsAuthorized(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.False(t, ok)
}
