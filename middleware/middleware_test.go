package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/middleware"
	"taskboard/models"
	"taskboard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTAuthMiddlewareResolvesCaller(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := utils.GenerateToken(userID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	var gotID primitive.ObjectID
	var gotRole string
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = middleware.CallerID(r)
		gotRole = middleware.CallerRole(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.JWTAuthMiddleware(next).ServeHTTP(rr, req)

	require.True(t, called)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rr := httptest.NewRecorder()
	middleware.JWTAuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	middleware.JWTAuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
