package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"selstudy/internal/service"
	"selstudy/internal/transport/rest/handler"
	"selstudy/internal/transport/rest/middleware"
	"selstudy/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	ParticipantService  *service.ParticipantService
	AssignmentService   *service.AssignmentService
	TrialService        *service.TrialService
	AssessmentService   *service.AssessmentService
	UEQService          *service.UEQService
	QuestionService     *service.QuestionService
	TranslationService  *service.TranslationService
	NotificationService *service.NotificationService
	ClassService        *service.ClassService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	anonHandler := handler.NewAnonymousHandler(c.ParticipantService)
	assignHandler := handler.NewAssignmentHandler(c.AssignmentService)
	trialHandler := handler.NewTrialHandler(c.TrialService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	ueqHandler := handler.NewUEQHandler(c.UEQService, c.TrialService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	translateHandler := handler.NewTranslateHandler(c.TranslationService)
	notificationHandler := handler.NewNotificationHandler(c.NotificationService)
	classHandler := handler.NewClassHandler(c.ClassService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Anonymous participant routes (public, identified by anonId)
	api.HandleFunc("/anonymous/register", anonHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/anonymous/{anonId}/demographics", anonHandler.Demographics).Methods("PUT", "OPTIONS")
	api.HandleFunc("/anonymous/{anonId}/last-seen", anonHandler.UpdateLastSeen).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/anonymous/{anonId}/summary", anonHandler.SessionSummary).Methods("GET", "OPTIONS")

	// Assignment and trial flow
	api.HandleFunc("/assignments", assignHandler.Assign).Methods("POST", "OPTIONS")
	api.HandleFunc("/assignments/{anonId}", assignHandler.GetTrial).Methods("GET", "OPTIONS")
	api.HandleFunc("/trials/{anonId}/start", trialHandler.Start).Methods("POST", "OPTIONS")
	api.HandleFunc("/trials/{anonId}/answer", trialHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	api.HandleFunc("/trials/{anonId}/chat", trialHandler.Chat).Methods("POST", "OPTIONS")
	api.HandleFunc("/trials/{anonId}/chat/finish", trialHandler.FinishChat).Methods("POST", "OPTIONS")
	api.HandleFunc("/trials/{anonId}/reflection", trialHandler.SubmitReflection).Methods("POST", "OPTIONS")

	// Questionnaires and assessments
	api.HandleFunc("/questionnaires/casel", questionHandler.CASEL).Methods("GET", "OPTIONS")
	api.HandleFunc("/questionnaires/ueq", questionHandler.UEQ).Methods("GET", "OPTIONS")
	api.HandleFunc("/assessments/status", assessmentHandler.Status).Methods("GET", "OPTIONS")
	api.HandleFunc("/assessments", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/ueq/assessments", ueqHandler.Submit).Methods("POST", "OPTIONS")

	// Translation
	api.HandleFunc("/translate", translateHandler.Translate).Methods("POST", "OPTIONS")

	// Teacher auth
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Student submissions join by class code (public)
	api.HandleFunc("/classes/join/{code}/submissions", classHandler.SubmitStudentAnswer).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	api.HandleFunc("/ws/notifications", wsHandler.TeacherWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Teacher routes (require teacher auth)
	teacherRoutes := api.NewRoute().Subrouter()
	teacherRoutes.Use(authMW.RequireTeacher)

	teacherRoutes.HandleFunc("/classes", classHandler.Create).Methods("POST", "OPTIONS")
	teacherRoutes.HandleFunc("/classes", classHandler.List).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/classes/{classId}/submissions", classHandler.ListSubmissions).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/notifications/create", notificationHandler.Create).Methods("POST", "OPTIONS")
	teacherRoutes.HandleFunc("/notifications", notificationHandler.List).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods("PATCH", "OPTIONS")
	teacherRoutes.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods("PATCH", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
