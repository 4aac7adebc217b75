package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"selstudy/internal/model"
	"selstudy/internal/service"
	"selstudy/internal/transport/rest/middleware"
)

// NotificationHandler handles teacher notification endpoints
type NotificationHandler struct {
	notificationSvc *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// CreateNotificationRequest is the notification creation body
type CreateNotificationRequest struct {
	Type    string `json:"type"`
	TitleEn string `json:"titleEn"`
	TitleHe string `json:"titleHe"`
}

// Create handles POST /api/notifications/create
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())

	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if req.Type == "" {
		req.Type = model.NotificationSystem
	}

	n, err := h.notificationSvc.Create(r.Context(), teacherID, req.Type, req.TitleEn, req.TitleHe)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, n)
}

// List handles GET /api/notifications?lang=...
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = model.LangEN
	}

	views, err := h.notificationSvc.List(r.Context(), teacherID, lang)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": views})
}

// MarkRead handles PATCH /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.notificationSvc.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MarkAllRead handles PATCH /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())

	updated, err := h.notificationSvc.MarkAllRead(r.Context(), teacherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}
