package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vibeform/internal/service"
	"vibeform/internal/transport/rest/handler"
	"vibeform/internal/transport/rest/middleware"
	"vibeform/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	FormService     *service.FormService
	ResponseService *service.ResponseService
	SummaryService  *service.SummaryService
	FillService     *service.FillService
	WSHub           *ws.Hub
	CORSOrigins     []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService, c.SummaryService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	fillHandler := handler.NewFillHandler(c.FillService)
	wsHandler := ws.NewHandler(c.WSHub, c.FillService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))
	r.Use(middleware.Logging)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/responses/{formId}", responseHandler.Submit).Methods("POST", "OPTIONS")

	// Fill sessions are anonymous; the session id is the capability
	v1.HandleFunc("/fill/{formId}/sessions", fillHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}", fillHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}/answers/{questionId}", fillHandler.SetAnswer).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}/answers/{questionId}/toggle", fillHandler.Toggle).Methods("POST", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}/next", fillHandler.Next).Methods("POST", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}/back", fillHandler.Back).Methods("POST", "OPTIONS")
	v1.HandleFunc("/fill/sessions/{sessionId}/jump", fillHandler.Jump).Methods("POST", "OPTIONS")

	// WebSocket route
	v1.HandleFunc("/ws/fill/{sessionId}", wsHandler.FillWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}", formHandler.Update).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/summary", formHandler.Summary).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/responses/{responseId}", responseHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, ", "))
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
