package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "task_assigned"
	NotificationTaskUpdated  NotificationType = "task_updated"
)

type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	TaskID    primitive.ObjectID `json:"taskId" bson:"taskId"`
	Type      NotificationType   `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// NotificationDetails carries the referenced task's title alongside the
// notification itself.
type NotificationDetails struct {
	Notification `bson:",inline"`
	TaskTitle    string `json:"taskTitle"`
}
