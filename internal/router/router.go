// Package router wires the HTTP boundary of the daybook service: JSON
// handlers for the session, todo, and bookmark operations, plus health and
// internal stats endpoints. Handlers resolve the caller's identity from the
// request context and answer 401 when no valid identity is present.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/daybook/internal/auth"
	"github.com/patric-chuzhbe/daybook/internal/authenticator"
	"github.com/patric-chuzhbe/daybook/internal/embed"
	"github.com/patric-chuzhbe/daybook/internal/gzippedhttp"
	"github.com/patric-chuzhbe/daybook/internal/ipchecker"
	"github.com/patric-chuzhbe/daybook/internal/logger"
	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/service"
)

type servicer interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error)
	ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error

	ListBookmarks(ctx context.Context, userID, typeFilter string) ([]models.Bookmark, error)
	CreateBookmark(ctx context.Context, userID string, request models.CreateBookmarkRequest) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error

	GetInternalStats(ctx context.Context) (models.InternalStatsResponse, error)
	Ping(ctx context.Context) error
}

// Router holds the handler methods for all HTTP endpoints.
type Router struct {
	svc       servicer
	ipChecker *ipchecker.IPChecker
}

// bookmarkListItem is a bookmark plus its display-time embed hint.
// The hint is derived from the URL's shape and never persisted.
type bookmarkListItem struct {
	models.Bookmark
	Embed *embed.Embed `json:"embed,omitempty"`
}

type sessionResponse struct {
	UserID string `json:"user_id"`
}

// New assembles the chi mux with logging, compression, and authentication
// middleware chains around the daybook endpoints.
func New(
	svc servicer,
	theAuth authenticator.Authenticator,
	ipChecker *ipchecker.IPChecker,
) *chi.Mux {
	myRouter := &Router{
		svc:       svc,
		ipChecker: ipChecker,
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.UngzipRequest,
	)

	router.With(
		gzippedhttp.GzipResponse,
		theAuth.AuthenticateUser,
		theAuth.RegisterNewUser,
	).Post(`/api/session`, myRouter.PostApisession)

	authenticated := router.With(
		gzippedhttp.GzipResponse,
		theAuth.AuthenticateUser,
	)
	authenticated.Get(`/api/todos`, myRouter.GetApitodos)
	authenticated.Post(`/api/todos`, myRouter.PostApitodos)
	authenticated.Patch(`/api/todos/{id}/toggle`, myRouter.PatchApitodostoggle)
	authenticated.Delete(`/api/todos/{id}`, myRouter.DeleteApitodos)
	authenticated.Get(`/api/bookmarks`, myRouter.GetApibookmarks)
	authenticated.Post(`/api/bookmarks`, myRouter.PostApibookmarks)
	authenticated.Delete(`/api/bookmarks/{id}`, myRouter.DeleteApibookmarks)

	router.Get(`/ping`, myRouter.GetPing)
	router.Get(`/api/internal/stats`, myRouter.GetApiinternalstats)

	return router
}

func writeJSON(response http.ResponseWriter, status int, payload interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("Error encoding the response: ", zap.Error(err))
	}
}

func writeServiceError(response http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		http.Error(response, err.Error(), http.StatusUnprocessableEntity)

	case errors.Is(err, service.ErrNotFound):
		http.Error(response, err.Error(), http.StatusNotFound)

	default:
		logger.Log.Debugln("Unexpected service error: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
	}
}

func requireUserID(response http.ResponseWriter, request *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)

		return "", false
	}

	return userID, true
}

// PostApisession finalizes the session created by the registration
// middleware and echoes the resolved user ID.
func (router *Router) PostApisession(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	writeJSON(response, http.StatusCreated, sessionResponse{UserID: userID})
}

// GetApitodos lists the caller's todos, newest first.
func (router *Router) GetApitodos(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	todos, err := router.svc.ListTodos(request.Context(), userID)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, todos)
}

// PostApitodos creates a todo owned by the caller.
func (router *Router) PostApitodos(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	var createRequest models.CreateTodoRequest
	if err := json.NewDecoder(request.Body).Decode(&createRequest); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	todo, err := router.svc.CreateTodo(request.Context(), userID, createRequest)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusCreated, todo)
}

// PatchApitodostoggle flips the completion flag of the caller's todo.
func (router *Router) PatchApitodostoggle(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	todo, err := router.svc.ToggleTodo(request.Context(), userID, chi.URLParam(request, "id"))
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, todo)
}

// DeleteApitodos deletes the caller's todo; a nonexistent or foreign id is
// answered 204 all the same.
func (router *Router) DeleteApitodos(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	if err := router.svc.DeleteTodo(request.Context(), userID, chi.URLParam(request, "id")); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusNoContent)
}

// GetApibookmarks lists the caller's bookmarks, newest first, optionally
// restricted by the `type` query parameter, each with its embed hint.
func (router *Router) GetApibookmarks(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	bookmarks, err := router.svc.ListBookmarks(request.Context(), userID, request.URL.Query().Get("type"))
	if err != nil {
		writeServiceError(response, err)
		return
	}

	items := make([]bookmarkListItem, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		items = append(items, bookmarkListItem{
			Bookmark: bookmark,
			Embed:    embed.Classify(bookmark.Type, bookmark.URL),
		})
	}

	writeJSON(response, http.StatusOK, items)
}

// PostApibookmarks creates a bookmark owned by the caller.
func (router *Router) PostApibookmarks(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	var createRequest models.CreateBookmarkRequest
	if err := json.NewDecoder(request.Body).Decode(&createRequest); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	bookmark, err := router.svc.CreateBookmark(request.Context(), userID, createRequest)
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusCreated, bookmark)
}

// DeleteApibookmarks deletes the caller's bookmark with the same idempotent
// semantics as todo deletion.
func (router *Router) DeleteApibookmarks(response http.ResponseWriter, request *http.Request) {
	userID, ok := requireUserID(response, request)
	if !ok {
		return
	}

	if err := router.svc.DeleteBookmark(request.Context(), userID, chi.URLParam(request, "id")); err != nil {
		writeServiceError(response, err)
		return
	}

	response.WriteHeader(http.StatusNoContent)
}

// GetPing reports storage health.
func (router *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := router.svc.Ping(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `router.svc.Ping()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	response.WriteHeader(http.StatusOK)
}

// GetApiinternalstats returns record counters to clients from the trusted
// subnet only.
func (router *Router) GetApiinternalstats(response http.ResponseWriter, request *http.Request) {
	if router.ipChecker.IsTrustedSubnetEmpty() {
		response.WriteHeader(http.StatusForbidden)
		return
	}

	clientIP, err := router.ipChecker.GetClientIP(request)
	if err != nil {
		logger.Log.Debugln("Error calling the `router.ipChecker.GetClientIP()`: ", zap.Error(err))
		response.WriteHeader(http.StatusForbidden)
		return
	}

	if !router.ipChecker.Check(clientIP) {
		response.WriteHeader(http.StatusForbidden)
		return
	}

	stats, err := router.svc.GetInternalStats(request.Context())
	if err != nil {
		writeServiceError(response, err)
		return
	}

	writeJSON(response, http.StatusOK, stats)
}
