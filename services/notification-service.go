package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationService struct {
	notifications NotificationRepository
	tasks         TaskRepository
}

func NewNotificationService(notifications NotificationRepository, tasks TaskRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		tasks:         tasks,
	}
}

// ListForUser returns the caller's notifications, newest first, each with the
// referenced task's title attached.
func (ns *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDetails, error) {
	notifications, err := ns.notifications.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	taskIDs := make([]primitive.ObjectID, 0, len(notifications))
	seen := make(map[primitive.ObjectID]bool)
	for _, n := range notifications {
		if !seen[n.TaskID] {
			seen[n.TaskID] = true
			taskIDs = append(taskIDs, n.TaskID)
		}
	}

	titles, err := ns.tasks.FindTitlesByIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.NotificationDetails, 0, len(notifications))
	for _, n := range notifications {
		details = append(details, models.NotificationDetails{
			Notification: n,
			TaskTitle:    titles[n.TaskID],
		})
	}
	return details, nil
}

// MarkRead flips a notification to read on behalf of its owner. Marking an
// already-read notification again is not an error.
func (ns *NotificationService) MarkRead(ctx context.Context, id, callerID primitive.ObjectID) (*models.Notification, error) {
	notification, err := ns.notifications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if notification.UserID != callerID {
		return nil, ErrForbidden
	}

	if err := ns.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	notification.Read = true
	return notification, nil
}

// MarkAllRead flips every unread notification owned by the caller.
func (ns *NotificationService) MarkAllRead(ctx context.Context, callerID primitive.ObjectID) error {
	return ns.notifications.MarkAllRead(ctx, callerID)
}

// NotifyAssigned writes one task_assigned notification per recipient. Invoked
// by the task registry when assignments happen, never over HTTP.
func (ns *NotificationService) NotifyAssigned(ctx context.Context, taskID primitive.ObjectID, title string, userIDs []primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:    userID,
			TaskID:    taskID,
			Type:      models.NotificationTaskAssigned,
			Message:   fmt.Sprintf("You have been assigned to task %q", title),
			Read:      false,
			CreatedAt: now,
		})
	}
	return ns.notifications.InsertMany(ctx, notifications)
}

// RemoveForTask deletes every notification referencing a task. Called when
// the task itself is deleted.
func (ns *NotificationService) RemoveForTask(ctx context.Context, taskID primitive.ObjectID) error {
	return ns.notifications.DeleteByTask(ctx, taskID)
}
