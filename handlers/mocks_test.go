package handlers_test

import (
	"context"

	"taskboard/models"
	"taskboard/services"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, callerID primitive.ObjectID, in services.CreateTaskInput) (*models.TaskDetails, error) {
	args := m.Called(ctx, callerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) ListAll(ctx context.Context) ([]models.TaskDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) ListCreatedBy(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) ListAssignedTo(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id, callerID primitive.ObjectID, in services.UpdateTaskInput) (*models.TaskDetails, error) {
	args := m.Called(ctx, id, callerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) ChangeStatus(ctx context.Context, id, callerID primitive.ObjectID, status models.TaskStatus) (*models.TaskDetails, error) {
	args := m.Called(ctx, id, callerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskDetails), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id, callerID primitive.ObjectID) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationDetails), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, callerID primitive.ObjectID) (*models.Notification, error) {
	args := m.Called(ctx, id, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, callerID primitive.ObjectID) error {
	args := m.Called(ctx, callerID)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Search(ctx context.Context, query string) ([]models.UserRef, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRef), args.Error(1)
}
