package services

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"taskboard/models"
	"taskboard/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates an account and returns it with a signed token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	for _, login := range []string{in.Username, in.Email} {
		_, err := s.users.FindByLogin(ctx, login)
		if err == nil {
			return nil, "", ErrUserExists
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := in.Role
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := &models.User{
		FullName:  html.EscapeString(in.FullName),
		Username:  html.EscapeString(in.Username),
		Email:     html.EscapeString(in.Email),
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials against either username or email and
// returns the account with a signed token.
func (s *UserService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Search matches the query against full name, username, and email as a
// case-insensitive substring. A blank query yields an empty result, not an
// error.
func (s *UserService) Search(ctx context.Context, query string) ([]models.UserRef, error) {
	if strings.TrimSpace(query) == "" {
		return []models.UserRef{}, nil
	}

	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.UserRef{}
	}
	return users, nil
}
