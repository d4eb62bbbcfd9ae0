package services

import (
	"context"
	"errors"
	"time"

	"taskboard/logging"
	"taskboard/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskService struct {
	tasks                TaskRepository
	users                UserRepository
	notifier             AssignmentNotifier
	notificationsBreaker *gobreaker.CircuitBreaker
}

func NewTaskService(tasks TaskRepository, users UserRepository, notifier AssignmentNotifier, notificationsBreaker *gobreaker.CircuitBreaker) *TaskService {
	return &TaskService{
		tasks:                tasks,
		users:                users,
		notifier:             notifier,
		notificationsBreaker: notificationsBreaker,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssignedTo  []primitive.ObjectID
}

// UpdateTaskInput carries a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
	AssignedTo  *[]primitive.ObjectID
}

// Create persists a task owned by the caller and fans out one task_assigned
// notification per assignee. The task write and the fan-out are separate
// writes; a fan-out failure is logged and does not undo the task.
func (s *TaskService) Create(ctx context.Context, callerID primitive.ObjectID, in CreateTaskInput) (*models.TaskDetails, error) {
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if in.AssignedTo == nil {
		in.AssignedTo = []primitive.ObjectID{}
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedBy:   callerID,
		AssignedTo:  in.AssignedTo,
		CreatedAt:   time.Now(),
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.notifyAssigned(ctx, task.ID, task.Title, uniqueIDs(task.AssignedTo))

	return s.resolve(ctx, task)
}

// ListAll returns every task, newest first. The admin-only check sits in the
// handler with the other role checks.
func (s *TaskService) ListAll(ctx context.Context) ([]models.TaskDetails, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, tasks)
}

// ListCreatedBy returns the tasks the caller created, newest first.
func (s *TaskService) ListCreatedBy(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error) {
	tasks, err := s.tasks.FindByCreator(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, tasks)
}

// ListAssignedTo returns the tasks the caller is assigned to, newest first.
func (s *TaskService) ListAssignedTo(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetails, error) {
	tasks, err := s.tasks.FindByAssignee(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, tasks)
}

// Update applies the supplied fields to a task owned by the caller. When the
// assignee list changes, only users not previously assigned are notified.
func (s *TaskService) Update(ctx context.Context, id, callerID primitive.ObjectID, in UpdateTaskInput) (*models.TaskDetails, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if task.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	fields := bson.M{}
	if in.Title != nil {
		fields["title"] = *in.Title
		task.Title = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
		task.Description = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
		task.Status = *in.Status
	}
	if in.Priority != nil {
		fields["priority"] = *in.Priority
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		fields["dueDate"] = *in.DueDate
		task.DueDate = in.DueDate
	}

	var newlyAssigned []primitive.ObjectID
	if in.AssignedTo != nil {
		previous := make(map[primitive.ObjectID]bool, len(task.AssignedTo))
		for _, userID := range task.AssignedTo {
			previous[userID] = true
		}
		for _, userID := range uniqueIDs(*in.AssignedTo) {
			if !previous[userID] {
				newlyAssigned = append(newlyAssigned, userID)
			}
		}
		fields["assignedTo"] = *in.AssignedTo
		task.AssignedTo = *in.AssignedTo
	}

	if len(fields) > 0 {
		if err := s.tasks.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrTaskNotFound
			}
			return nil, err
		}
	}

	s.notifyAssigned(ctx, task.ID, task.Title, newlyAssigned)

	return s.resolve(ctx, task)
}

// ChangeStatus updates a task's status on behalf of one of its assignees.
func (s *TaskService) ChangeStatus(ctx context.Context, id, callerID primitive.ObjectID, status models.TaskStatus) (*models.TaskDetails, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	assigned := false
	for _, userID := range task.AssignedTo {
		if userID == callerID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, ErrForbidden
	}

	if err := s.tasks.UpdateFields(ctx, id, bson.M{"status": status}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = status
	return s.resolve(ctx, task)
}

// Delete removes a task owned by the caller and cascades to every
// notification referencing it.
func (s *TaskService) Delete(ctx context.Context, id, callerID primitive.ObjectID) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	if task.CreatedBy != callerID {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	return s.notifier.RemoveForTask(ctx, id)
}

func (s *TaskService) notifyAssigned(ctx context.Context, taskID primitive.ObjectID, title string, userIDs []primitive.ObjectID) {
	if len(userIDs) == 0 {
		return
	}

	_, err := s.notificationsBreaker.Execute(func() (interface{}, error) {
		return nil, s.notifier.NotifyAssigned(ctx, taskID, title, userIDs)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFY_ASSIGNED_FAILED, Description: Failed to notify %d assignees of task %s: %v", len(userIDs), taskID.Hex(), err)
	}
}

// resolve expands a task's user references into display fields.
func (s *TaskService) resolve(ctx context.Context, task *models.Task) (*models.TaskDetails, error) {
	details, err := s.resolveAll(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *TaskService) resolveAll(ctx context.Context, tasks []models.Task) ([]models.TaskDetails, error) {
	idSet := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, task := range tasks {
		if !idSet[task.CreatedBy] {
			idSet[task.CreatedBy] = true
			ids = append(ids, task.CreatedBy)
		}
		for _, userID := range task.AssignedTo {
			if !idSet[userID] {
				idSet[userID] = true
				ids = append(ids, userID)
			}
		}
	}

	refs, err := s.users.FindRefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}

	details := make([]models.TaskDetails, 0, len(tasks))
	for _, task := range tasks {
		assigned := make([]models.UserRef, 0, len(task.AssignedTo))
		for _, userID := range task.AssignedTo {
			if ref, ok := byID[userID]; ok {
				assigned = append(assigned, ref)
			}
		}
		details = append(details, models.TaskDetails{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			DueDate:     task.DueDate,
			CreatedBy:   byID[task.CreatedBy],
			AssignedTo:  assigned,
			CreatedAt:   task.CreatedAt,
		})
	}
	return details, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
