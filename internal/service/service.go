// Package service implements the user-scoped record store: validation,
// defaulting, and ownership-scoped CRUD for todos and bookmarks. Every
// operation takes the resolved user ID of the caller and never touches
// records owned by anyone else.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/daybook/internal/models"
)

type transactioner interface {
	BeginTransaction() (*sql.Tx, error)

	RollbackTransaction(transaction *sql.Tx) error

	CommitTransaction(transaction *sql.Tx) error
}

type todosKeeper interface {
	GetUserTodos(ctx context.Context, userID string) ([]models.Todo, error)

	InsertTodo(ctx context.Context, todo *models.Todo, transaction *sql.Tx) (models.Todo, error)

	FindUserTodo(ctx context.Context, userID, todoID string) (models.Todo, bool, error)

	UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) error

	DeleteUserTodo(ctx context.Context, userID, todoID string) error
}

type bookmarksKeeper interface {
	GetUserBookmarks(
		ctx context.Context,
		userID string,
		typeFilter models.BookmarkType,
	) ([]models.Bookmark, error)

	InsertBookmark(ctx context.Context, bookmark *models.Bookmark, transaction *sql.Tx) (models.Bookmark, error)

	DeleteUserBookmark(ctx context.Context, userID, bookmarkID string) error
}

type statsKeeper interface {
	GetNumberOfUsers(ctx context.Context) (int64, error)

	GetNumberOfTodos(ctx context.Context) (int64, error)

	GetNumberOfBookmarks(ctx context.Context) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	transactioner
	todosKeeper
	bookmarksKeeper
	statsKeeper
	pinger
}

// ErrNotFound is returned when a record does not exist or belongs to another
// user. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("record not found")

// ErrValidation is returned when required input is missing or malformed.
var ErrValidation = errors.New("invalid input")

// dueDateLayouts are the external due date representations accepted on todo
// creation: RFC3339, the datetime-local form value, and a bare date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

var requestValidator = validator.New()

type Service struct {
	db storage
}

func New(db storage) *Service {
	return &Service{
		db: db,
	}
}

// ListTodos returns the caller's todos ordered by creation time descending.
// A user without todos gets an empty slice, not an error.
func (s *Service) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	return s.db.GetUserTodos(ctx, userID)
}

// CreateTodo validates the request and inserts a new todo owned by the caller.
// The title must be non-empty after trimming; the priority falls back to
// medium; a non-empty due date must parse as one of the accepted layouts.
func (s *Service) CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error) {
	request.Title = strings.TrimSpace(request.Title)
	if err := requestValidator.Struct(request); err != nil {
		return models.Todo{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return models.Todo{}, err
	}

	todo := &models.Todo{
		UserID:      userID,
		Title:       request.Title,
		Description: strings.TrimSpace(request.Description),
		Completed:   false,
		Priority:    models.ParsePriority(request.Priority),
		DueDate:     dueDate,
	}

	tx, err := s.db.BeginTransaction()
	if err != nil {
		return models.Todo{}, err
	}
	defer func() {
		_ = s.db.RollbackTransaction(tx)
	}()

	created, err := s.db.InsertTodo(ctx, todo, tx)
	if err != nil {
		return models.Todo{}, err
	}

	if err := s.db.CommitTransaction(tx); err != nil {
		return models.Todo{}, err
	}

	return created, nil
}

// ToggleTodo flips the completion flag of the caller's todo.
// A todo that does not exist or belongs to another user yields ErrNotFound.
// Concurrent toggles of the same todo are not coordinated: last write wins.
func (s *Service) ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	todo, found, err := s.db.FindUserTodo(ctx, userID, todoID)
	if err != nil {
		return models.Todo{}, err
	}
	if !found {
		return models.Todo{}, ErrNotFound
	}

	todo.Completed = !todo.Completed
	if err := s.db.UpdateTodoCompletion(ctx, userID, todoID, todo.Completed); err != nil {
		return models.Todo{}, err
	}

	return todo, nil
}

// DeleteTodo removes the caller's todo. Deleting a nonexistent or foreign id
// is a silent no-op so duplicate delete requests never surface spurious errors.
func (s *Service) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return s.db.DeleteUserTodo(ctx, userID, todoID)
}

// ListBookmarks returns the caller's bookmarks ordered by creation time
// descending. A non-empty typeFilter restricts the listing to that stored
// type; unrecognized filter values fall back to the generic type.
func (s *Service) ListBookmarks(ctx context.Context, userID, typeFilter string) ([]models.Bookmark, error) {
	filter := models.BookmarkType("")
	if typeFilter != "" {
		filter = models.ParseBookmarkType(typeFilter)
	}

	return s.db.GetUserBookmarks(ctx, userID, filter)
}

// CreateBookmark validates the request and inserts a new bookmark owned by
// the caller. Title and URL must be non-empty after trimming; the type falls
// back to generic. The URL's shape is not checked against the declared type:
// embed classification is advisory and happens at display time.
func (s *Service) CreateBookmark(ctx context.Context, userID string, request models.CreateBookmarkRequest) (models.Bookmark, error) {
	request.Title = strings.TrimSpace(request.Title)
	request.URL = strings.TrimSpace(request.URL)
	if err := requestValidator.Struct(request); err != nil {
		return models.Bookmark{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	bookmark := &models.Bookmark{
		UserID:      userID,
		Title:       request.Title,
		URL:         request.URL,
		Type:        models.ParseBookmarkType(request.Type),
		Description: strings.TrimSpace(request.Description),
	}

	tx, err := s.db.BeginTransaction()
	if err != nil {
		return models.Bookmark{}, err
	}
	defer func() {
		_ = s.db.RollbackTransaction(tx)
	}()

	created, err := s.db.InsertBookmark(ctx, bookmark, tx)
	if err != nil {
		return models.Bookmark{}, err
	}

	if err := s.db.CommitTransaction(tx); err != nil {
		return models.Bookmark{}, err
	}

	return created, nil
}

// DeleteBookmark removes the caller's bookmark with the same idempotent
// no-op semantics as DeleteTodo.
func (s *Service) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	return s.db.DeleteUserBookmark(ctx, userID, bookmarkID)
}

// GetInternalStats returns the user/todo/bookmark counters.
func (s *Service) GetInternalStats(ctx context.Context) (models.InternalStatsResponse, error) {
	users, err := s.db.GetNumberOfUsers(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	todos, err := s.db.GetNumberOfTodos(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	bookmarks, err := s.db.GetNumberOfBookmarks(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	return models.InternalStatsResponse{
		Users:     users,
		Todos:     todos,
		Bookmarks: bookmarks,
	}, nil
}

// Ping checks the health of the database/storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("%w: unparseable due date %q", ErrValidation, value)
}
