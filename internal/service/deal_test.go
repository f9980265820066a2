package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradyhq/dealdesk/internal/config"
	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/mocks"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/bradyhq/dealdesk/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fanOutCall struct {
	deal  *model.Deal
	audit *model.DealAudit
}

// fakeNotifier records fan-out calls and optionally fails them, standing in
// for the notification service behind the workflow engine.
type fakeNotifier struct {
	calls []fanOutCall
	err   error
}

func (f *fakeNotifier) FanOutDealStatus(_ context.Context, deal *model.Deal, audit *model.DealAudit) error {
	f.calls = append(f.calls, fanOutCall{deal: deal, audit: audit})
	return f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Deals.MinExpiryDays = 90
	cfg.Deals.ExpiryWarningDays = 7
	return cfg
}

// expectTransition wires the mock repository to behave like the real one:
// run the apply step against the given deal and commit, or surface the apply
// error with nothing written.
func expectTransition(repo *mocks.MockDealRepositoryIface, deal *model.Deal) *gomock.Call {
	return repo.EXPECT().
		Transition(gomock.Any(), deal.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, apply repository.ApplyFunc) (*model.Deal, *model.DealAudit, error) {
			audit, err := apply(deal)
			if err != nil {
				return nil, nil, err
			}
			return deal, audit, nil
		})
}

func partnerUser(orgID uuid.UUID) *model.User {
	return &model.User{ID: uuid.New(), Username: "partner", Role: model.RolePartner, PartnerOrganisationID: &orgID}
}

func reviewerUser() *model.User {
	return &model.User{ID: uuid.New(), Username: "reviewer", Role: model.RoleBrady}
}

func draftDeal(orgID uuid.UUID) *model.Deal {
	return &model.Deal{
		ID:              uuid.New(),
		PartnerID:       orgID,
		EndCustomerName: "Globex",
		EstimatedValue:  decimal.NewFromInt(50000),
		ProductCategory: model.CategoryLabels,
		DealType:        model.DealTypeNew,
		Status:          model.StatusDraft,
		CreatedAt:       time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 10, 16, 45, 0, 0, time.UTC),
	}
}

func TestCreateDeal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	partner := partnerUser(orgID)

	input := service.CreateDealInput{
		EndCustomerName: "Globex",
		EstimatedValue:  decimal.NewFromInt(12000),
		ProductCategory: model.CategoryPrinters,
		DealType:        model.DealTypeNew,
	}

	t.Run("partner creates a draft for their organisation", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, deal *model.Deal) error {
				assert.Equal(t, orgID, deal.PartnerID)
				assert.Equal(t, model.StatusDraft, deal.Status)
				assert.Nil(t, deal.ExpiryDate)
				return nil
			})

		deal, err := svc.CreateDeal(context.Background(), partner, input)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusDraft, deal.Status)
	})

	t.Run("reviewer cannot create deals", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		_, err := svc.CreateDeal(context.Background(), reviewerUser(), input)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("partner without organisation is rejected", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		orphan := &model.User{ID: uuid.New(), Role: model.RolePartner}
		_, err := svc.CreateDeal(context.Background(), orphan, input)
		assert.ErrorIs(t, err, domain.ErrPartnerRequired)
	})

	t.Run("negative estimated value is rejected", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		bad := input
		bad.EstimatedValue = decimal.NewFromInt(-1)
		_, err := svc.CreateDeal(context.Background(), partner, bad)
		assert.ErrorIs(t, err, domain.ErrNegativeValue)
	})
}

func TestTransitionSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	partner := partnerUser(orgID)
	deal := draftDeal(orgID)

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	notifier := &fakeNotifier{}
	svc := service.NewDealService(repo, notifier, nil, testConfig())

	expectTransition(repo, deal)

	got, err := svc.Transition(context.Background(), partner, deal.ID, model.StatusSubmitted)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, got.Status)
	assert.Nil(t, got.ExpiryDate, "submission must not set an expiry date")

	// One fan-out carrying the committed audit entry.
	assert.Len(t, notifier.calls, 1)
	audit := notifier.calls[0].audit
	assert.Equal(t, model.StatusDraft, audit.OldStatus)
	assert.Equal(t, model.StatusSubmitted, audit.NewStatus)
	assert.NotNil(t, audit.ChangedByID)
	assert.Equal(t, partner.ID, *audit.ChangedByID)
}

func TestTransitionApproveSetsExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	deal := draftDeal(orgID)
	deal.Status = model.StatusSubmitted

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	notifier := &fakeNotifier{}
	svc := service.NewDealService(repo, notifier, nil, testConfig())

	expectTransition(repo, deal)

	got, err := svc.Transition(context.Background(), reviewerUser(), deal.ID, model.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)

	// Expiry anchors on the last-modified date, truncated to a day, plus the
	// configured window.
	assert.NotNil(t, got.ExpiryDate)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 90)
	assert.True(t, got.ExpiryDate.Equal(want), "expiry %s, want %s", got.ExpiryDate, want)
}

func TestTransitionApproveStraightFromSubmitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deal := draftDeal(uuid.New())
	deal.Status = model.StatusSubmitted

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

	expectTransition(repo, deal)

	_, err := svc.Transition(context.Background(), reviewerUser(), deal.ID, model.StatusApproved)
	assert.NoError(t, err, "UNDER_REVIEW is optional on the way to APPROVED")
}

func TestTransitionDeniedCases(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("foreign partner gets not-found and nothing changes", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusSubmitted

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		notifier := &fakeNotifier{}
		svc := service.NewDealService(repo, notifier, nil, testConfig())

		expectTransition(repo, deal)

		foreign := partnerUser(uuid.New())
		_, err := svc.Transition(context.Background(), foreign, deal.ID, model.StatusSubmitted)
		assert.ErrorIs(t, err, domain.ErrDealNotFound, "existence must not leak across organisations")
		assert.Equal(t, model.StatusSubmitted, deal.Status)
		assert.Empty(t, notifier.calls)
	})

	t.Run("partner cannot approve their own deal", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusSubmitted

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		notifier := &fakeNotifier{}
		svc := service.NewDealService(repo, notifier, nil, testConfig())

		expectTransition(repo, deal)

		_, err := svc.Transition(context.Background(), partnerUser(orgID), deal.ID, model.StatusApproved)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, model.StatusSubmitted, deal.Status)
		assert.Empty(t, notifier.calls)
	})

	t.Run("closed deals reject further transitions", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusClosedWon

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		expectTransition(repo, deal)

		_, err := svc.Transition(context.Background(), reviewerUser(), deal.ID, model.StatusClosedLost)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("DRAFT is never a target", func(t *testing.T) {
		// No repository expectation: the rule lookup fails before any query.
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		_, err := svc.Transition(context.Background(), reviewerUser(), uuid.New(), model.StatusDraft)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestTransitionSurvivesFanOutFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	deal := draftDeal(orgID)

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := service.NewDealService(repo, notifier, nil, testConfig())

	expectTransition(repo, deal)

	got, err := svc.Transition(context.Background(), partnerUser(orgID), deal.ID, model.StatusSubmitted)
	assert.NoError(t, err, "delivery failures must not unwind a committed transition")
	assert.Equal(t, model.StatusSubmitted, got.Status)
	assert.Len(t, notifier.calls, 1)
}

func TestGetDeal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	deal := draftDeal(orgID)

	t.Run("owning partner sees the deal", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		repo.EXPECT().FindByID(gomock.Any(), deal.ID).Return(deal, nil)

		got, err := svc.GetDeal(context.Background(), partnerUser(orgID), deal.ID)
		assert.NoError(t, err)
		assert.Equal(t, deal.ID, got.ID)
	})

	t.Run("foreign partner gets not-found", func(t *testing.T) {
		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		repo.EXPECT().FindByID(gomock.Any(), deal.ID).Return(deal, nil)

		_, err := svc.GetDeal(context.Background(), partnerUser(uuid.New()), deal.ID)
		assert.ErrorIs(t, err, domain.ErrDealNotFound)
	})
}

func TestFilteredDealsScopesPartners(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	partner := partnerUser(orgID)

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

	otherOrg := uuid.New()
	repo.EXPECT().
		FindFiltered(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter repository.DealFilter) ([]*model.Deal, error) {
			// The requested foreign organisation must be overridden.
			assert.NotNil(t, filter.PartnerID)
			assert.Equal(t, orgID, *filter.PartnerID)
			return nil, nil
		})

	_, err := svc.FilteredDeals(context.Background(), partner, repository.DealFilter{PartnerID: &otherOrg})
	assert.NoError(t, err)
}

func TestUpdateDeal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	input := service.UpdateDealInput{
		EndCustomerName: "Globex",
		Description:     "Extended rollout",
		EstimatedValue:  decimal.NewFromInt(60000),
		ProductCategory: model.CategoryLabels,
		DealType:        model.DealTypeExpansion,
	}

	t.Run("partner edits a submitted deal", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusSubmitted

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		expectTransition(repo, deal)

		got, err := svc.UpdateDeal(context.Background(), partnerUser(orgID), deal.ID, input)
		assert.NoError(t, err)
		assert.Equal(t, "Extended rollout", got.Description)
		assert.Equal(t, model.StatusSubmitted, got.Status, "field edits never change status")
	})

	t.Run("partner cannot edit once under review", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusUnderReview

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		expectTransition(repo, deal)

		_, err := svc.UpdateDeal(context.Background(), partnerUser(orgID), deal.ID, input)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("only reviewers assign the internal owner", func(t *testing.T) {
		deal := draftDeal(orgID)
		deal.Status = model.StatusSubmitted
		ownerID := uuid.New()

		withOwner := input
		withOwner.InternalOwnerID = &ownerID

		repo := mocks.NewMockDealRepositoryIface(ctrl)
		svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

		expectTransition(repo, deal)
		got, err := svc.UpdateDeal(context.Background(), partnerUser(orgID), deal.ID, withOwner)
		assert.NoError(t, err)
		assert.Nil(t, got.InternalOwnerID, "partner input must not assign an owner")

		expectTransition(repo, deal)
		got, err = svc.UpdateDeal(context.Background(), reviewerUser(), deal.ID, withOwner)
		assert.NoError(t, err)
		assert.Equal(t, &ownerID, got.InternalOwnerID)
	})
}

func TestRunExpirySweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	orgID := uuid.New()

	overdue := draftDeal(orgID)
	overdue.Status = model.StatusApproved
	past := today.AddDate(0, 0, -2)
	overdue.ExpiryDate = &past

	// A concurrent approval pushed this one's expiry out after the candidate
	// list was built; the locked re-check must skip it.
	raced := draftDeal(orgID)
	raced.Status = model.StatusApproved
	future := today.AddDate(0, 0, 30)
	raced.ExpiryDate = &future

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	notifier := &fakeNotifier{}
	svc := service.NewDealService(repo, notifier, nil, testConfig())

	repo.EXPECT().
		FindExpirable(gomock.Any(), today).
		Return([]uuid.UUID{overdue.ID, raced.ID}, nil)
	expectTransition(repo, overdue)
	expectTransition(repo, raced)

	count, err := svc.RunExpirySweep(context.Background(), today)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, model.StatusExpired, overdue.Status)
	assert.Equal(t, model.StatusApproved, raced.Status)

	// The sweep is a system actor: audit entry with no user, fan-out as usual.
	assert.Len(t, notifier.calls, 1)
	audit := notifier.calls[0].audit
	assert.Nil(t, audit.ChangedByID)
	assert.Equal(t, model.StatusExpired, audit.NewStatus)
	assert.NotEmpty(t, audit.Note)
}

func TestRunExpirySweepIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Already swept by a previous run that raced the candidate query.
	deal := draftDeal(uuid.New())
	deal.Status = model.StatusExpired
	past := today.AddDate(0, 0, -10)
	deal.ExpiryDate = &past

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	notifier := &fakeNotifier{}
	svc := service.NewDealService(repo, notifier, nil, testConfig())

	repo.EXPECT().FindExpirable(gomock.Any(), today).Return([]uuid.UUID{deal.ID}, nil)
	expectTransition(repo, deal)

	count, err := svc.RunExpirySweep(context.Background(), today)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, notifier.calls, "no duplicate audit or notifications")
}

func TestAuditTrailVisibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	deal := draftDeal(orgID)

	repo := mocks.NewMockDealRepositoryIface(ctrl)
	svc := service.NewDealService(repo, &fakeNotifier{}, nil, testConfig())

	repo.EXPECT().FindByID(gomock.Any(), deal.ID).Return(deal, nil)

	_, err := svc.AuditTrail(context.Background(), partnerUser(uuid.New()), deal.ID)
	assert.ErrorIs(t, err, domain.ErrDealNotFound, "audit trail hides like the deal itself")
}
