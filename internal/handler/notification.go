// internal/handler/notification.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type NotificationListResponse struct {
	BaseResponse
	Notifications []*model.Notification `json:"notifications"`
}

type NotificationResponse struct {
	BaseResponse
	Notification *model.Notification `json:"notification"`
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.List(r.Context(), actorFrom(r))
	if err != nil {
		h.respondWithNotificationError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, NotificationListResponse{
		BaseResponse:  BaseResponse{Ok: true},
		Notifications: notifications,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.MarkRead(r.Context(), actorFrom(r), id)
	if err != nil {
		h.respondWithNotificationError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, NotificationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Notification: n,
	})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.MarkAllRead(r.Context(), actorFrom(r))
	if err != nil {
		h.respondWithNotificationError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "marked": count})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context(), actorFrom(r))
	if err != nil {
		h.respondWithNotificationError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "unread": count})
}

func (h *NotificationHandler) respondWithNotificationError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Notification operation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
	switch {
	case errors.Is(err, domain.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, "Notification not found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
