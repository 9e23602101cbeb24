package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"nlpdform/internal/service"
	"nlpdform/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	SubmissionService *service.SubmissionService
	StatsService      *service.StatsService
	AnalysisService   *service.AnalysisService
	StatusService     *service.StatusService
	EmailService      *service.EmailService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService, c.StatsService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)
	statusHandler := handler.NewStatusHandler(c.StatusService)
	emailHandler := handler.NewEmailHandler(c.EmailService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/", statusHandler.Root).Methods("GET", "OPTIONS")
	api.HandleFunc("/health", statusHandler.Health).Methods("GET", "OPTIONS")

	api.HandleFunc("/submissions", submissionHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/submissions/{id}", submissionHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/submissions/{id}/status", submissionHandler.UpdateStatus).Methods("PATCH", "OPTIONS")

	api.HandleFunc("/stats", submissionHandler.Stats).Methods("GET", "OPTIONS")

	api.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST", "OPTIONS")

	api.HandleFunc("/emails", emailHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/emails/{submissionId}", emailHandler.Get).Methods("GET", "OPTIONS")

	api.HandleFunc("/status", statusHandler.CreateCheck).Methods("POST", "OPTIONS")
	api.HandleFunc("/status", statusHandler.ListChecks).Methods("GET", "OPTIONS")

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
			allowedMethods = "GET, POST, PATCH, OPTIONS"
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
