package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName  string             `json:"fullName" bson:"fullName"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserRef is the display subset of a user embedded wherever another document
// references one. It never carries the password hash.
type UserRef struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	FullName string             `json:"fullName" bson:"fullName"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
}
