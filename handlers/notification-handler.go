package handlers

import (
	"net/http"

	"taskboard/logging"
	"taskboard/middleware"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetNotifications returns the caller's notifications, newest first.
func (nh *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	notifications, err := nh.service.ListForUser(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (nh *NotificationHandler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	notificationID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	notification, err := nh.service.MarkRead(r.Context(), notificationID, callerID)
	if err != nil {
		respondError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: NOTIFICATION_READ, Description: Notification %s marked as read by %s", notificationID.Hex(), callerID.Hex())
	respondJSON(w, http.StatusOK, notification)
}

func (nh *NotificationHandler) MarkAllNotificationsAsRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	if err := nh.service.MarkAllRead(r.Context(), callerID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "all notifications marked as read")
}
