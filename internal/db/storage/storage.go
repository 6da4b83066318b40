// Package storage declares the interface every storage backend implements.
// All record operations are scoped by the owning user's ID: a record is never
// visible to, mutable by, or deletable by anyone but its owner.
package storage

import (
	"context"
	"database/sql"

	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/user"
)

type Storage interface {
	CreateUser(ctx context.Context, usr *user.User, transaction *sql.Tx) (string, error)

	GetUserByID(ctx context.Context, userID string, transaction *sql.Tx) (*user.User, error)

	GetUserTodos(ctx context.Context, userID string) ([]models.Todo, error)

	InsertTodo(ctx context.Context, todo *models.Todo, transaction *sql.Tx) (models.Todo, error)

	FindUserTodo(ctx context.Context, userID, todoID string) (models.Todo, bool, error)

	UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) error

	DeleteUserTodo(ctx context.Context, userID, todoID string) error

	GetUserBookmarks(
		ctx context.Context,
		userID string,
		typeFilter models.BookmarkType,
	) ([]models.Bookmark, error)

	InsertBookmark(ctx context.Context, bookmark *models.Bookmark, transaction *sql.Tx) (models.Bookmark, error)

	DeleteUserBookmark(ctx context.Context, userID, bookmarkID string) error

	GetNumberOfUsers(ctx context.Context) (int64, error)

	GetNumberOfTodos(ctx context.Context) (int64, error)

	GetNumberOfBookmarks(ctx context.Context) (int64, error)

	BeginTransaction() (*sql.Tx, error)

	RollbackTransaction(transaction *sql.Tx) error

	CommitTransaction(transaction *sql.Tx) error

	Ping(ctx context.Context) error

	Close() error
}
