package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventlist/internal/clock"
	"eventlist/internal/delivery/http/helpers"
	"eventlist/internal/domain"
	"eventlist/internal/filter"
)

// EventListResponse is the body of GET /events/.
type EventListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []*domain.Event `json:"results"`
}

// EventPostListResponse is the body of GET /events/{id}/posts/.
type EventPostListResponse struct {
	Count    int                 `json:"count"`
	Next     *string             `json:"next"`
	Previous *string             `json:"previous"`
	Results  []*domain.EventPost `json:"results"`
}

type EventController struct {
	Logger        *slog.Logger
	Service       domain.EventService
	PostService   domain.EventPostService
	FilterBuilder *filter.EventFilterBuilder
	Clock         clock.Clock
}

func NewEventController(logger *slog.Logger, svc domain.EventService, postSvc domain.EventPostService, clk clock.Clock) *EventController {
	return &EventController{
		Logger:        logger,
		Service:       svc,
		PostService:   postSvc,
		FilterBuilder: filter.NewEventFilterBuilder(logger),
		Clock:         clk,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated events, newest start first. Filters combine with AND; values that cannot be parsed are ignored.
// @Tags events
// @Produce json
// @Param category query string false "Category name, case-insensitive exact match"
// @Param start_date query string false "Only events starting on or after this date"
// @Param end_date query string false "Only events starting on or before this date"
// @Param upcoming query string false "true to list only events that have not started"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 9, max 100)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (page out of range)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/ [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.ParsePagination(r)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	f := c.FilterBuilder.Build(r.Context(), filter.ParamsFromQuery(r.URL.Query()), c.Clock.Now())
	page, err := c.Service.ListEvents(r.Context(), f, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.NewPageResponse(r, page))
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns one event with its category and venue.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/ [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		helpers.WriteNotFound(w)
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// ListEventPosts godoc
// @Summary List an event's posts
// @Description Paginated posts of one event, newest first.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 9, max 100)"
// @Success 200 {object} controllers.EventPostListResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/posts/ [get]
func (c *EventController) ListEventPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		helpers.WriteNotFound(w)
		return
	}
	params, err := helpers.ParsePagination(r)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	page, err := c.PostService.ListPosts(r.Context(), id, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.NewPageResponse(r, page))
}

// writeError maps err to a 404 or, logging it, to a 500.
func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrPageNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invalid page")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteNotFound(w)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

// pathUUID returns the named path value if it is a UUID. Any other value cannot name a row.
func pathUUID(r *http.Request, name string) (string, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
