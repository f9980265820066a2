package policy_test

import (
	"testing"

	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanRead(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	partnerA := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgA}
	partnerB := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgB}
	orphanPartner := &model.User{ID: uuid.New(), Role: model.RolePartner}
	reviewer := &model.User{ID: uuid.New(), Role: model.RoleBrady}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	deal := &model.Deal{ID: uuid.New(), PartnerID: orgA, Status: model.StatusSubmitted}

	tests := []struct {
		name  string
		actor *model.User
		want  bool
	}{
		{"nil actor denied", nil, false},
		{"owning partner allowed", partnerA, true},
		{"foreign partner denied", partnerB, false},
		{"partner without organisation denied", orphanPartner, false},
		{"reviewer allowed", reviewer, true},
		{"admin allowed", admin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanRead(tt.actor, deal))
		})
	}

	assert.False(t, policy.CanRead(reviewer, nil), "nil deal denied")
}

func TestCanWrite(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	partnerA := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgA}
	partnerB := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgB}
	reviewer := &model.User{ID: uuid.New(), Role: model.RoleBrady}

	dealIn := func(status model.DealStatus) *model.Deal {
		return &model.Deal{ID: uuid.New(), PartnerID: orgA, Status: status}
	}

	t.Run("owning partner may edit only DRAFT and SUBMITTED", func(t *testing.T) {
		editable := map[model.DealStatus]bool{
			model.StatusDraft:     true,
			model.StatusSubmitted: true,
		}
		for _, status := range []model.DealStatus{
			model.StatusDraft, model.StatusSubmitted, model.StatusUnderReview,
			model.StatusApproved, model.StatusRejected, model.StatusExpired,
			model.StatusClosedWon, model.StatusClosedLost,
		} {
			assert.Equalf(t, editable[status], policy.CanWrite(partnerA, dealIn(status)), "status %s", status)
		}
	})

	t.Run("foreign partner may never edit", func(t *testing.T) {
		assert.False(t, policy.CanWrite(partnerB, dealIn(model.StatusDraft)))
	})

	t.Run("reviewer may edit in any status", func(t *testing.T) {
		assert.True(t, policy.CanWrite(reviewer, dealIn(model.StatusClosedWon)))
	})

	t.Run("nil actor denied", func(t *testing.T) {
		assert.False(t, policy.CanWrite(nil, dealIn(model.StatusDraft)))
	})
}
