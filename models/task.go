package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Status      TaskStatus           `json:"status" bson:"status"`
	Priority    TaskPriority         `json:"priority" bson:"priority"`
	DueDate     *time.Time           `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedBy   primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	AssignedTo  []primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}

// TaskDetails is a task with its user references resolved to display fields.
type TaskDetails struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      TaskStatus         `json:"status"`
	Priority    TaskPriority       `json:"priority"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	CreatedBy   UserRef            `json:"createdBy"`
	AssignedTo  []UserRef          `json:"assignedTo"`
	CreatedAt   time.Time          `json:"createdAt"`
}
