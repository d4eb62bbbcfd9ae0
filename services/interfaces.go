package services

import (
	"context"

	"taskboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskRepository is the storage surface the services need for tasks.
// Implemented by repositories.TaskRepo; test doubles implement it too.
type TaskRepository interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	FindTitlesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NotificationRepository is the storage surface for the notification outbox.
type NotificationRepository interface {
	InsertMany(ctx context.Context, notifications []models.Notification) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteByTask(ctx context.Context, taskID primitive.ObjectID) error
}

// UserRepository is the storage surface for the user directory.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Search(ctx context.Context, query string) ([]models.UserRef, error)
	FindRefsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserRef, error)
}

// AssignmentNotifier is what the task registry needs from the notification
// outbox: fan-out on assignment and cleanup on task deletion.
type AssignmentNotifier interface {
	NotifyAssigned(ctx context.Context, taskID primitive.ObjectID, title string, userIDs []primitive.ObjectID) error
	RemoveForTask(ctx context.Context, taskID primitive.ObjectID) error
}
