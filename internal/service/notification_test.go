package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/email"
	"github.com/bradyhq/dealdesk/internal/mocks"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testBaseURL = "https://deals.example.com"

func newNotificationService(
	notifications *mocks.MockNotificationRepositoryIface,
	users *mocks.MockUserRepositoryIface,
	sender *mocks.MockSender,
) *service.NotificationService {
	return service.NewNotificationService(notifications, users, sender, nil, nil, testBaseURL)
}

func TestFanOutDealStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	ownerID := uuid.New()

	partnerWithEmail := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgID, Email: "alice@acme.example"}
	partnerNoEmail := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgID}
	reviewer := &model.User{ID: uuid.New(), Role: model.RoleBrady, Email: "reviewer@brady.example"}
	owner := &model.User{ID: ownerID, Role: model.RoleBrady, Email: "owner@brady.example"}

	deal := &model.Deal{
		ID:              uuid.New(),
		PartnerID:       orgID,
		EndCustomerName: "Globex",
		ProjectName:     "RFID pilot",
		Status:          model.StatusSubmitted,
		InternalOwnerID: &ownerID,
	}
	actorID := partnerWithEmail.ID
	audit := &model.DealAudit{
		DealID:      deal.ID,
		ChangedByID: &actorID,
		OldStatus:   model.StatusDraft,
		NewStatus:   model.StatusSubmitted,
	}

	t.Run("submission reaches partner users, reviewers and the owner once each", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		sender := mocks.NewMockSender(ctrl)
		svc := newNotificationService(notifications, users, sender)

		users.EXPECT().FindByPartner(gomock.Any(), orgID).Return([]*model.User{partnerWithEmail, partnerNoEmail}, nil)
		users.EXPECT().FindByRole(gomock.Any(), model.RoleBrady).Return([]*model.User{reviewer, owner}, nil)
		// Owner already collected via the reviewer list; the extra lookup
		// still happens but must not produce a fifth notification.
		users.EXPECT().FindByID(gomock.Any(), ownerID).Return(owner, nil)

		var created []*model.Notification
		notifications.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *model.Notification) error {
				created = append(created, n)
				return nil
			}).
			Times(4)

		// Emails only for recipients with an address.
		sender.EXPECT().
			SendEmail(gomock.Any()).
			DoAndReturn(func(data email.EmailData) error {
				assert.Equal(t, "deal_status", data.TemplateName)
				assert.NotEmpty(t, data.To)
				return nil
			}).
			Times(3)

		err := svc.FanOutDealStatus(context.Background(), deal, audit)
		assert.NoError(t, err)

		recipients := make(map[uuid.UUID]bool)
		for _, n := range created {
			assert.False(t, recipients[n.RecipientID], "recipient notified twice")
			recipients[n.RecipientID] = true
			assert.Equal(t, &actorID, n.ChangedByID)
			assert.Contains(t, n.Verb, "RFID pilot")
			assert.Contains(t, n.Verb, "SUBMITTED")
		}
		assert.True(t, recipients[partnerWithEmail.ID], "acting user is notified too")
	})

	t.Run("non-submission events skip the reviewer broadcast", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		sender := mocks.NewMockSender(ctrl)
		svc := newNotificationService(notifications, users, sender)

		approved := *deal
		approved.Status = model.StatusApproved
		approved.InternalOwnerID = nil
		approvalAudit := &model.DealAudit{
			DealID:    deal.ID,
			OldStatus: model.StatusSubmitted,
			NewStatus: model.StatusApproved,
		}

		users.EXPECT().FindByPartner(gomock.Any(), orgID).Return([]*model.User{partnerWithEmail}, nil)
		notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		sender.EXPECT().SendEmail(gomock.Any()).Return(nil)

		err := svc.FanOutDealStatus(context.Background(), &approved, approvalAudit)
		assert.NoError(t, err)
	})

	t.Run("email failure is swallowed", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		sender := mocks.NewMockSender(ctrl)
		svc := newNotificationService(notifications, users, sender)

		expired := *deal
		expired.Status = model.StatusExpired
		expired.InternalOwnerID = nil
		sweepAudit := &model.DealAudit{
			DealID:    deal.ID,
			OldStatus: model.StatusApproved,
			NewStatus: model.StatusExpired,
			Note:      "expired by scheduled sweep",
		}

		users.EXPECT().FindByPartner(gomock.Any(), orgID).Return([]*model.User{partnerWithEmail}, nil)
		notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		sender.EXPECT().SendEmail(gomock.Any()).Return(errors.New("sendgrid 503"))

		err := svc.FanOutDealStatus(context.Background(), &expired, sweepAudit)
		assert.NoError(t, err, "the in-app notification already landed")
	})

	t.Run("one failed insert does not stop the rest", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		sender := mocks.NewMockSender(ctrl)
		svc := newNotificationService(notifications, users, sender)

		approved := *deal
		approved.Status = model.StatusApproved
		approved.InternalOwnerID = nil
		approvalAudit := &model.DealAudit{
			DealID:    deal.ID,
			OldStatus: model.StatusSubmitted,
			NewStatus: model.StatusApproved,
		}

		other := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgID, Email: "bob@acme.example"}
		users.EXPECT().FindByPartner(gomock.Any(), orgID).Return([]*model.User{partnerWithEmail, other}, nil)

		gomock.InOrder(
			notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed")),
			notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)
		// Only the recipient whose notification landed gets the email.
		sender.EXPECT().SendEmail(gomock.Any()).Return(nil)

		err := svc.FanOutDealStatus(context.Background(), &approved, approvalAudit)
		assert.NoError(t, err)
	})
}

func TestWarnExpiring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	partner := &model.User{ID: uuid.New(), Role: model.RolePartner, PartnerOrganisationID: &orgID, Email: "alice@acme.example"}

	expiry := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	deal := &model.Deal{
		ID:              uuid.New(),
		PartnerID:       orgID,
		EndCustomerName: "Globex",
		Status:          model.StatusApproved,
		ExpiryDate:      &expiry,
	}

	notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
	users := mocks.NewMockUserRepositoryIface(ctrl)
	sender := mocks.NewMockSender(ctrl)
	svc := newNotificationService(notifications, users, sender)

	users.EXPECT().FindByPartner(gomock.Any(), orgID).Return([]*model.User{partner}, nil)
	sender.EXPECT().
		SendEmail(gomock.Any()).
		DoAndReturn(func(data email.EmailData) error {
			assert.Equal(t, "deal_expiring", data.TemplateName)
			assert.Equal(t, partner.Email, data.To)
			return nil
		})

	err := svc.WarnExpiring(context.Background(), deal)
	assert.NoError(t, err)
}

func TestMarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &model.User{ID: uuid.New(), Role: model.RolePartner}

	t.Run("marks the recipient's own notification", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		svc := newNotificationService(notifications, users, mocks.NewMockSender(ctrl))

		n := &model.Notification{ID: uuid.New(), RecipientID: user.ID, Verb: "Deal Globex status changed to APPROVED"}
		notifications.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
		notifications.EXPECT().Update(gomock.Any(), n).Return(nil)

		got, err := svc.MarkRead(context.Background(), user, n.ID)
		assert.NoError(t, err)
		assert.True(t, got.Read)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		svc := newNotificationService(notifications, users, mocks.NewMockSender(ctrl))

		n := &model.Notification{ID: uuid.New(), RecipientID: uuid.New()}
		notifications.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)

		_, err := svc.MarkRead(context.Background(), user, n.ID)
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})

	t.Run("already-read notification is not rewritten", func(t *testing.T) {
		notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		svc := newNotificationService(notifications, users, mocks.NewMockSender(ctrl))

		n := &model.Notification{ID: uuid.New(), RecipientID: user.ID, Read: true}
		notifications.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)

		got, err := svc.MarkRead(context.Background(), user, n.ID)
		assert.NoError(t, err)
		assert.True(t, got.Read)
	})
}

func TestMarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &model.User{ID: uuid.New(), Role: model.RolePartner}

	notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
	users := mocks.NewMockUserRepositoryIface(ctrl)
	svc := newNotificationService(notifications, users, mocks.NewMockSender(ctrl))

	notifications.EXPECT().MarkAllRead(gomock.Any(), user.ID).Return(int64(3), nil)

	count, err := svc.MarkAllRead(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUnreadCountRequiresUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifications := mocks.NewMockNotificationRepositoryIface(ctrl)
	users := mocks.NewMockUserRepositoryIface(ctrl)
	svc := newNotificationService(notifications, users, mocks.NewMockSender(ctrl))

	_, err := svc.UnreadCount(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
