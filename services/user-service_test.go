package services_test

import (
	"context"
	"testing"

	"taskboard/models"
	"taskboard/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	users.On("FindByLogin", mock.Anything, "ana").Return(nil, mongo.ErrNoDocuments)
	users.On("FindByLogin", mock.Anything, "ana@example.com").Return(nil, mongo.ErrNoDocuments)

	var inserted *models.User
	users.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*models.User)
		inserted.ID = primitive.NewObjectID()
	}).Return(nil)

	user, token, err := svc.Register(context.Background(), services.RegisterInput{
		FullName: "Ana Anic",
		Username: "ana",
		Email:    "ana@example.com",
		Password: "s3cretpass",
		Role:     "superuser",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "s3cretpass", inserted.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("s3cretpass")))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	users.On("FindByLogin", mock.Anything, "ana").Return(&models.User{Username: "ana"}, nil)

	_, _, err := svc.Register(context.Background(), services.RegisterInput{
		FullName: "Ana Anic",
		Username: "ana",
		Email:    "ana@example.com",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, services.ErrUserExists)
	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByLogin", mock.Anything, "ana").Return(&models.User{
		ID:       primitive.NewObjectID(),
		Username: "ana",
		Password: string(hash),
	}, nil)

	_, _, err = svc.Login(context.Background(), "ana", "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	users.On("FindByLogin", mock.Anything, "ghost").Return(nil, mongo.ErrNoDocuments)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSearchBlankQueryReturnsEmptySet(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	results, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	users.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchNoMatchesReturnsEmptySet(t *testing.T) {
	users := new(MockUserRepo)
	svc := services.NewUserService(users)

	users.On("Search", mock.Anything, "zzz").Return(nil, nil)

	results, err := svc.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
