package api

import (
	"net/http"
	"time"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/api/handlers"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/auth"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/services"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// RouterDeps are the collaborators the HTTP surface is built from.
type RouterDeps struct {
	AuthService    services.AuthServiceProvider
	IdeaService    services.IdeaServiceProvider
	Tokens         auth.TokenVerifier
	Hub            *websocket.Hub
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	ideaHandler := handlers.NewIdeaHandler(deps.IdeaService)
	requireAuth := auth.Middleware(deps.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", ideaHandler.List)
				r.Post("/", ideaHandler.Create)
				r.Patch("/{id}", ideaHandler.UpdateStatus)
				r.Delete("/{id}", ideaHandler.Delete)
			})
		})

		if deps.Hub != nil {
			wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.AllowedOrigins)
			r.With(auth.WebSocketMiddleware(deps.Tokens)).Get("/ws", wsHandler.Serve)
		}
	})

	return r
}

// requestIDLogger tags the request logger with chi's request id.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Request handled")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}` + "\n"))
}
