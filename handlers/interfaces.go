package handlers

import (
	"context"

	"taskboard/models"
	"taskboard/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService is the surface the task handler consumes. Implemented by
// services.TaskService; handler tests substitute a mock.
type TaskService interface {
	Create(ctx context.Context, callerID primitive.ObjectID, in services.CreateTaskInput) (*models.TaskDetails, error)
	ListAll(ctx context.Context) ([]models.TaskDetails, error)
	ListCreatedBy(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error)
	ListAssignedTo(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error)
	Update(ctx context.Context, id, callerID primitive.ObjectID, in services.UpdateTaskInput) (*models.TaskDetails, error)
	ChangeStatus(ctx context.Context, id, callerID primitive.ObjectID, status models.TaskStatus) (*models.TaskDetails, error)
	Delete(ctx context.Context, id, callerID primitive.ObjectID) error
}

// NotificationService is the surface the notification handler consumes.
type NotificationService interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDetails, error)
	MarkRead(ctx context.Context, id, callerID primitive.ObjectID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, callerID primitive.ObjectID) error
}

// UserService is the surface the user handler consumes.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, login, password string) (*models.User, string, error)
	Search(ctx context.Context, query string) ([]models.UserRef, error)
}
