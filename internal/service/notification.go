// internal/service/notification.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bradyhq/dealdesk/internal/cache"
	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/email/mailer"
	"github.com/bradyhq/dealdesk/internal/metrics"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/google/uuid"
)

// NotificationService derives recipient sets from audit events, persists
// in-app notifications and sends best-effort emails. Nothing in here is
// allowed to break a committed transition: delivery failures are logged and
// swallowed.
type NotificationService struct {
	notifications repository.NotificationRepositoryIface
	users         repository.UserRepositoryIface
	emailSender   mailer.Sender
	cache         *cache.InMemoryCache
	metrics       *metrics.Metrics
	baseURL       string
}

func NewNotificationService(
	notifications repository.NotificationRepositoryIface,
	users repository.UserRepositoryIface,
	emailSender mailer.Sender,
	c *cache.InMemoryCache,
	m *metrics.Metrics,
	baseURL string,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		emailSender:   emailSender,
		cache:         c,
		metrics:       m,
		baseURL:       baseURL,
	}
}

// FanOutDealStatus computes the recipient set for a just-committed audit
// event and emits one in-app notification per recipient plus a best-effort
// email to those with an address. Recipients are the deal's partner
// organisation users, all BRADY reviewers when the deal was just submitted
// (review queue alert), and the internal owner. The acting user is not
// excluded.
func (s *NotificationService) FanOutDealStatus(ctx context.Context, deal *model.Deal, audit *model.DealAudit) error {
	if deal == nil || audit == nil {
		return nil
	}

	recipients, err := s.recipientsFor(ctx, deal, audit)
	if err != nil {
		return err
	}

	verb := fmt.Sprintf("Deal %s status changed to %s", deal.Label(), audit.NewStatus)
	description := fmt.Sprintf("Status changed from %s to %s.", audit.OldStatus, audit.NewStatus)

	for _, recipient := range recipients {
		n := &model.Notification{
			RecipientID: recipient.ID,
			ChangedByID: audit.ChangedByID,
			Verb:        verb,
			Description: description,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			slog.WarnContext(ctx, "creating notification failed",
				"deal_id", deal.ID,
				"recipient_id", recipient.ID,
				"error", err,
			)
			continue
		}

		if s.metrics != nil {
			s.metrics.NotificationsCreated.Inc()
		}
		s.invalidateUnreadCount(ctx, recipient.ID)

		if recipient.Email == "" || s.emailSender == nil {
			continue
		}
		data := mailer.DealStatusTemplateData{
			DealLabel:   deal.Label(),
			PartnerName: s.partnerName(deal),
			OldStatus:   string(audit.OldStatus),
			NewStatus:   string(audit.NewStatus),
			DealLink:    fmt.Sprintf("%s/deals/%s", s.baseURL, deal.ID),
		}
		if err := mailer.SendDealStatusEmail(s.emailSender, recipient.Email, data); err != nil {
			slog.WarnContext(ctx, "deal status email failed",
				"deal_id", deal.ID,
				"recipient", recipient.Email,
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.EmailFailures.Inc()
			}
		}
	}

	return nil
}

// recipientsFor derives the de-duplicated recipient set for an audit event.
func (s *NotificationService) recipientsFor(ctx context.Context, deal *model.Deal, audit *model.DealAudit) ([]*model.User, error) {
	seen := make(map[uuid.UUID]bool)
	var recipients []*model.User

	add := func(users ...*model.User) {
		for _, u := range users {
			if u == nil || seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			recipients = append(recipients, u)
		}
	}

	partnerUsers, err := s.users.FindByPartner(ctx, deal.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("finding partner users: %w", err)
	}
	add(partnerUsers...)

	if audit.NewStatus == model.StatusSubmitted {
		reviewers, err := s.users.FindByRole(ctx, model.RoleBrady)
		if err != nil {
			return nil, fmt.Errorf("finding reviewers: %w", err)
		}
		add(reviewers...)
	}

	if deal.InternalOwnerID != nil {
		owner, err := s.users.FindByID(ctx, *deal.InternalOwnerID)
		if err == nil {
			add(owner)
		} else {
			slog.WarnContext(ctx, "internal owner lookup failed",
				"deal_id", deal.ID,
				"owner_id", *deal.InternalOwnerID,
				"error", err,
			)
		}
	}

	return recipients, nil
}

// WarnExpiring sends nearing-expiry emails for a deal to its partner users
// and internal owner. No in-app notifications: this is a courtesy email only,
// used by the scheduled sweep.
func (s *NotificationService) WarnExpiring(ctx context.Context, deal *model.Deal) error {
	if deal == nil || deal.ExpiryDate == nil || s.emailSender == nil {
		return nil
	}

	recipients, err := s.recipientsFor(ctx, deal, &model.DealAudit{NewStatus: deal.Status})
	if err != nil {
		return err
	}

	data := mailer.DealExpiringTemplateData{
		DealLabel:   deal.Label(),
		PartnerName: s.partnerName(deal),
		ExpiryDate:  deal.ExpiryDate.Format("2006-01-02"),
	}
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}
		if err := mailer.SendExpiryWarningEmail(s.emailSender, recipient.Email, data); err != nil {
			slog.WarnContext(ctx, "expiry warning email failed",
				"deal_id", deal.ID,
				"recipient", recipient.Email,
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.EmailFailures.Inc()
			}
		}
	}

	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, user *model.User) ([]*model.Notification, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.notifications.FindByRecipient(ctx, user.ID)
}

// MarkRead flags one of the user's notifications as read. A notification
// belonging to someone else is reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, user *model.User, id uuid.UUID) (*model.Notification, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != user.ID {
		return nil, domain.ErrNotificationNotFound
	}

	if !n.Read {
		n.Read = true
		if err := s.notifications.Update(ctx, n); err != nil {
			return nil, err
		}
		s.invalidateUnreadCount(ctx, user.ID)
	}

	return n, nil
}

// MarkAllRead flags all of the user's unread notifications and returns how
// many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, user *model.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrUnauthorized
	}

	count, err := s.notifications.MarkAllRead(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.invalidateUnreadCount(ctx, user.ID)
	}
	return count, nil
}

// UnreadCount returns the user's unread notification count, cached briefly
// to keep the navbar badge cheap.
func (s *NotificationService) UnreadCount(ctx context.Context, user *model.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrUnauthorized
	}

	key := unreadCountKey(user.ID)
	if s.cache != nil {
		if v, ok := s.cache.Get(ctx, key); ok {
			if count, ok := v.(int64); ok {
				return count, nil
			}
		}
	}

	count, err := s.notifications.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, count)
	}
	return count, nil
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Delete(ctx, unreadCountKey(userID))
	}
}

func (s *NotificationService) partnerName(deal *model.Deal) string {
	if deal.Partner != nil {
		return deal.Partner.Name
	}
	return ""
}

func unreadCountKey(userID uuid.UUID) string {
	return "unread_count:" + userID.String()
}

// compile-time check that the service satisfies the engine's notifier
var _ DealNotifier = (*NotificationService)(nil)
