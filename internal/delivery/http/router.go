package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventlist/internal/delivery/http/controllers"
	"eventlist/internal/delivery/http/helpers"
	"eventlist/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Listing and detail routes answer with and without a trailing slash.
func NewRouter(eventController *controllers.EventController) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{$}", eventController.ListEvents)
	mux.HandleFunc("GET /events/{id}", eventController.GetEvent)
	mux.HandleFunc("GET /events/{id}/{$}", eventController.GetEvent)
	mux.HandleFunc("GET /events/{id}/posts", eventController.ListEventPosts)
	mux.HandleFunc("GET /events/{id}/posts/{$}", eventController.ListEventPosts)

	mux.HandleFunc("GET /health", Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteNotFound(w)
	})

	return mux
}

// NewHandler wraps the router in the request id, logging and CORS middleware.
func NewHandler(mux http.Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux)))
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
