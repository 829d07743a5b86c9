package controlhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	// RequestsPerSecond and Burst bound each route; zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// NewRouter builds the control surface router.
func NewRouter(h *Handlers, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(OperationIDMiddleware)
	r.Use(CORSMiddleware(opts.AllowedOrigins))

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}
	r.Get("/status", h.HandleStatus)
	r.Get("/leaderboard/{division}", h.HandleGetLeaderboard)

	r.Group(func(r chi.Router) {
		if opts.RequestsPerSecond > 0 {
			burst := opts.Burst
			if burst <= 0 {
				burst = 1
			}
			r.Use(RateLimitMiddleware(NewOperationLimiter(rate.Limit(opts.RequestsPerSecond), burst)))
		}

		r.Post("/focus/{index}", h.HandleSetFocus)
		r.Route("/score", func(r chi.Router) {
			r.Post("/increase", h.HandleIncreaseScore)
			r.Post("/revert", h.HandleRevertScore)
			r.Post("/reset", h.HandleResetScores)
			r.Post("/throws/{throws}", h.HandleSetThrows)
		})
		r.Post("/group/{id}", h.HandleSetGroup)
		r.Post("/queue", h.HandleAddToQueue)
		r.Post("/queue/next", h.HandleNextQueued)
		r.Post("/featured/{hole}", h.HandleSetFeaturedHole)
		r.Post("/leaderboard/{division}", h.HandleShowLeaderboard)
	})
	return r
}
