package model_test

import (
	"testing"

	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []model.DealStatus{
	model.StatusDraft,
	model.StatusSubmitted,
	model.StatusUnderReview,
	model.StatusApproved,
	model.StatusRejected,
	model.StatusExpired,
	model.StatusClosedWon,
	model.StatusClosedLost,
}

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to model.DealStatus
	}{
		{model.StatusDraft, model.StatusSubmitted},
		{model.StatusSubmitted, model.StatusUnderReview},
		{model.StatusSubmitted, model.StatusApproved},
		{model.StatusSubmitted, model.StatusRejected},
		{model.StatusUnderReview, model.StatusApproved},
		{model.StatusUnderReview, model.StatusRejected},
		{model.StatusApproved, model.StatusClosedWon},
		{model.StatusApproved, model.StatusClosedLost},
		{model.StatusDraft, model.StatusExpired},
		{model.StatusSubmitted, model.StatusExpired},
		{model.StatusUnderReview, model.StatusExpired},
		{model.StatusApproved, model.StatusExpired},
		{model.StatusRejected, model.StatusExpired},
	}

	allowedSet := make(map[[2]model.DealStatus]bool, len(allowed))
	for _, tc := range allowed {
		allowedSet[[2]model.DealStatus{tc.from, tc.to}] = true
	}

	// Exhaustive: everything not in the allowed list must be rejected.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := model.CanTransition(from, to)
			want := allowedSet[[2]model.DealStatus{from, to}]
			assert.Equalf(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestClosedDealsAreFinal(t *testing.T) {
	// No rule, including EXPIRED, may leave a closed deal.
	for _, from := range []model.DealStatus{model.StatusClosedWon, model.StatusClosedLost} {
		for _, to := range allStatuses {
			assert.Falsef(t, model.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestDraftIsNeverATarget(t *testing.T) {
	_, ok := model.RuleFor(model.StatusDraft)
	assert.False(t, ok, "DRAFT is the initial state, not a transition target")
}

func TestExpiredIsSystemOnly(t *testing.T) {
	rule, ok := model.RuleFor(model.StatusExpired)
	assert.True(t, ok)
	assert.True(t, rule.System)
	assert.False(t, rule.Partner)
	assert.False(t, rule.Reviewer)
}

func TestReviewDecisionsAreReviewerOnly(t *testing.T) {
	for _, target := range []model.DealStatus{model.StatusUnderReview, model.StatusApproved, model.StatusRejected} {
		rule, ok := model.RuleFor(target)
		assert.True(t, ok)
		assert.Truef(t, rule.Reviewer, "%s should allow reviewers", target)
		assert.Falsef(t, rule.Partner, "%s should not allow partners", target)
		assert.Falsef(t, rule.System, "%s should not allow the system", target)
	}
}

func TestClosingAllowsPartnerAndReviewer(t *testing.T) {
	for _, target := range []model.DealStatus{model.StatusClosedWon, model.StatusClosedLost} {
		rule, ok := model.RuleFor(target)
		assert.True(t, ok)
		assert.True(t, rule.Partner)
		assert.True(t, rule.Reviewer)
		assert.Equal(t, []model.DealStatus{model.StatusApproved}, rule.From)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[model.DealStatus]bool{
		model.StatusRejected:   true,
		model.StatusExpired:    true,
		model.StatusClosedWon:  true,
		model.StatusClosedLost: true,
	}
	for _, s := range allStatuses {
		assert.Equalf(t, terminal[s], s.IsTerminal(), "status %s", s)
	}
}

func TestDealLabel(t *testing.T) {
	d := &model.Deal{EndCustomerName: "Globex", ProjectName: "Warehouse relabelling"}
	assert.Equal(t, "Warehouse relabelling", d.Label())

	d.ProjectName = ""
	assert.Equal(t, "Globex", d.Label())
}
