package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/barenakeddev/intelliplan-sub000/internal/config"
	"github.com/barenakeddev/intelliplan-sub000/internal/handlers"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler      *handlers.AuthHandler
	RFPHandlers      *handlers.RFPHandlers
	FloorplanHandler *handlers.FloorplanHandler
	EventHandlers    *handlers.EventHandlers
	Config           *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Document generation can take a while on a slow model; keep the
	// request timeout generous.
	r.Use(middleware.Timeout(120 * time.Second))

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- RFP Drafting Routes ---
	// Public by design: the drafting assistant is embedded in flows where
	// the planner has not signed up yet.
	r.Route("/rfp", func(r chi.Router) {
		if deps.RFPHandlers == nil {
			panic("RFPHandlers dependency is nil in router setup")
		}
		r.Post("/conversation", deps.RFPHandlers.HandleCreateConversation)
		r.Post("/message", deps.RFPHandlers.HandleSendMessage)
		r.Post("/generate", deps.RFPHandlers.HandleGenerateRFP)
		r.Post("/extract", deps.RFPHandlers.HandleExtract)
		r.Get("/recommendations/{conversationID}", deps.RFPHandlers.HandleGetRecommendations)
		r.Get("/document/{conversationID}", deps.RFPHandlers.HandleGetRFPDocument)
		r.Get("/extraction/{conversationID}", deps.RFPHandlers.HandleGetExtractionSnapshot)

		if deps.FloorplanHandler != nil {
			r.Post("/floorplan", deps.FloorplanHandler.HandleGenerateFloorplan)
		} else {
			log.Println("WARN: FloorplanHandler dependency is nil, skipping /rfp/floorplan route.")
		}
	})

	// --- Authenticated Routes (JWT Required) ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

		if deps.EventHandlers != nil {
			r.Route("/events", func(r chi.Router) {
				r.Post("/", deps.EventHandlers.HandleCreateEvent)
				r.Get("/", deps.EventHandlers.HandleListEvents)
				r.Get("/{eventID}", deps.EventHandlers.HandleGetEvent)
				r.Patch("/{eventID}", deps.EventHandlers.HandleUpdateEvent)
				r.Delete("/{eventID}", deps.EventHandlers.HandleDeleteEvent)
			})
		} else {
			log.Println("WARN: EventHandlers dependency is nil, skipping /v1/events routes.")
		}
	})

	return r
}
