package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskboard/logging"
	"taskboard/middleware"
	"taskboard/models"
	"taskboard/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	AssignedTo  []string            `json:"assignedTo"`
}

type updateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"dueDate"`
	AssignedTo  *[]string            `json:"assignedTo"`
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hex := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		respondMessage(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		respondMessage(w, http.StatusBadRequest, "invalid priority")
		return
	}

	assignedTo, err := parseObjectIDs(req.AssignedTo)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid user id in assignedTo")
		return
	}

	task, err := h.service.Create(r.Context(), callerID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssignedTo:  assignedTo,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created by %s with %d assignees", task.ID.Hex(), callerID.Hex(), len(task.AssignedTo))
	respondJSON(w, http.StatusCreated, task)
}

// GetAllTasks is admin only.
func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	if middleware.CallerRole(r) != models.RoleAdmin {
		respondMessage(w, http.StatusForbidden, "admin access required")
		return
	}

	tasks, err := h.service.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetCreatedTasks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	tasks, err := h.service.ListCreatedBy(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	tasks, err := h.service.ListAssignedTo(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		respondMessage(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		respondMessage(w, http.StatusBadRequest, "invalid priority")
		return
	}
	if req.Title != nil && *req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	in := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.AssignedTo != nil {
		assignedTo, err := parseObjectIDs(*req.AssignedTo)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid user id in assignedTo")
			return
		}
		in.AssignedTo = &assignedTo
	}

	task, err := h.service.Update(r.Context(), taskID, callerID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !req.Status.Valid() {
		respondMessage(w, http.StatusBadRequest, "invalid status")
		return
	}

	task, err := h.service.ChangeStatus(r.Context(), taskID, callerID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.service.Delete(r.Context(), taskID, callerID); err != nil {
		respondError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by %s", taskID.Hex(), callerID.Hex())
	respondMessage(w, http.StatusOK, "task deleted")
}
