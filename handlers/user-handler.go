package handlers

import (
	"encoding/json"
	"net/http"

	"taskboard/logging"
	"taskboard/models"
	"taskboard/services"
)

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (uh *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "fullName, username, email and password are required")
		return
	}

	user, token, err := uh.service.Register(r.Context(), services.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %s registered", user.Username)
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Login == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, token, err := uh.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// SearchUsers matches the query against name, username and email. A blank
// query returns an empty set rather than an error.
func (uh *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	users, err := uh.service.Search(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]models.UserRef{"users": users})
}
