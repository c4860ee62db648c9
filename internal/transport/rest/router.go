package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/inov8tr/placement-api/internal/service"
	"github.com/inov8tr/placement-api/internal/transport/rest/handler"
	"github.com/inov8tr/placement-api/internal/transport/rest/middleware"
	"github.com/inov8tr/placement-api/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	AuthService    *service.AuthService
	SurveyService  *service.SurveyService
	TestService    *service.TestService
	ContentService *service.ContentService
	WSHandler      *ws.Handler
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	testHandler := handler.NewTestHandler(c.TestService)
	contentHandler := handler.NewContentHandler(c.ContentService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Proctor monitor (admin token in query param)
	v1.HandleFunc("/ws/tests/{testId}/monitor", c.WSHandler.MonitorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/student/{studentId}", surveyHandler.ListByStudent).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/tests", testHandler.Assign).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/tests/student/{studentId}", testHandler.ListByStudent).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/tests/{testId}/report", testHandler.Report).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/tests/{testId}/review", testHandler.Review).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/content/questions", contentHandler.CreateQuestion).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/content/questions/{section}", contentHandler.ListQuestions).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/content/questions/{id}", contentHandler.DeleteQuestion).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/content/passages", contentHandler.CreatePassage).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/content/passages/{id}", contentHandler.GetPassage).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/content/passages/{id}", contentHandler.DeletePassage).Methods("DELETE", "OPTIONS")

	// Student routes (test-scoped token)
	studentRoutes := v1.NewRoute().Subrouter()
	studentRoutes.Use(authMW.RequireStudent)

	studentRoutes.HandleFunc("/tests/{testId}/next", testHandler.NextItem).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/tests/{testId}/answers", testHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/tests/{testId}/heartbeat", testHandler.Heartbeat).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/tests/{testId}", testHandler.Summary).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
