// Package mockstorage provides a testify-based mock implementation
// of the internal storage interfaces used by the router and service packages.
// It is used for unit testing HTTP handlers by simulating storage behavior.
package mockstorage

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/user"
)

// StorageMock is a testify mock that implements all interfaces
// used by the service layer for storage operations.
//
// Use it in router and service tests to simulate database behavior.
type StorageMock struct {
	mock.Mock

	// OnGetNumberOfUsers is an optional function field that can be assigned
	// to define custom mock behavior for GetNumberOfUsers in tests.
	//
	// If set, GetNumberOfUsers will delegate to this function instead of
	// using testify's generic mock handler.
	OnGetNumberOfUsers func(ctx context.Context) (int64, error)

	// OnGetNumberOfTodos is the same for GetNumberOfTodos.
	OnGetNumberOfTodos func(ctx context.Context) (int64, error)

	// OnGetNumberOfBookmarks is the same for GetNumberOfBookmarks.
	OnGetNumberOfBookmarks func(ctx context.Context) (int64, error)
}

// Ping mocks the pinger interface to simulate a health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// BeginTransaction mocks the beginning of a transaction.
func (m *StorageMock) BeginTransaction() (*sql.Tx, error) {
	args := m.Called()
	tx, _ := args.Get(0).(*sql.Tx)
	return tx, args.Error(1)
}

// CommitTransaction mocks committing a transaction.
func (m *StorageMock) CommitTransaction(tx *sql.Tx) error {
	args := m.Called(tx)
	return args.Error(0)
}

// RollbackTransaction mocks rolling back a transaction.
func (m *StorageMock) RollbackTransaction(tx *sql.Tx) error {
	args := m.Called(tx)
	return args.Error(0)
}

// CreateUser mocks user creation and returns a generated ID.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User, tx *sql.Tx) (string, error) {
	args := m.Called(ctx, usr, tx)
	return args.String(0), args.Error(1)
}

// GetUserByID mocks fetching a user by their ID.
func (m *StorageMock) GetUserByID(ctx context.Context, userID string, tx *sql.Tx) (*user.User, error) {
	args := m.Called(ctx, userID, tx)
	return args.Get(0).(*user.User), args.Error(1)
}

// GetUserTodos mocks listing a user's todos.
func (m *StorageMock) GetUserTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Todo), args.Error(1)
}

// InsertTodo mocks inserting a new todo.
func (m *StorageMock) InsertTodo(ctx context.Context, todo *models.Todo, tx *sql.Tx) (models.Todo, error) {
	args := m.Called(ctx, todo, tx)
	return args.Get(0).(models.Todo), args.Error(1)
}

// FindUserTodo mocks the ownership-scoped todo lookup.
func (m *StorageMock) FindUserTodo(ctx context.Context, userID, todoID string) (models.Todo, bool, error) {
	args := m.Called(ctx, userID, todoID)
	return args.Get(0).(models.Todo), args.Bool(1), args.Error(2)
}

// UpdateTodoCompletion mocks persisting a todo's completion flag.
func (m *StorageMock) UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) error {
	args := m.Called(ctx, userID, todoID, completed)
	return args.Error(0)
}

// DeleteUserTodo mocks the ownership-scoped todo deletion.
func (m *StorageMock) DeleteUserTodo(ctx context.Context, userID, todoID string) error {
	args := m.Called(ctx, userID, todoID)
	return args.Error(0)
}

// GetUserBookmarks mocks listing a user's bookmarks.
func (m *StorageMock) GetUserBookmarks(
	ctx context.Context,
	userID string,
	typeFilter models.BookmarkType,
) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID, typeFilter)
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

// InsertBookmark mocks inserting a new bookmark.
func (m *StorageMock) InsertBookmark(ctx context.Context, bookmark *models.Bookmark, tx *sql.Tx) (models.Bookmark, error) {
	args := m.Called(ctx, bookmark, tx)
	return args.Get(0).(models.Bookmark), args.Error(1)
}

// DeleteUserBookmark mocks the ownership-scoped bookmark deletion.
func (m *StorageMock) DeleteUserBookmark(ctx context.Context, userID, bookmarkID string) error {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Error(0)
}

// Close mocks closing the storage and releasing resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetNumberOfUsers returns the number of users as defined by the mock.
//
// If OnGetNumberOfUsers is non-nil, it will be called to produce the result.
// Otherwise, the method returns 0 and no error by default.
func (m *StorageMock) GetNumberOfUsers(ctx context.Context) (int64, error) {
	if m.OnGetNumberOfUsers != nil {
		return m.OnGetNumberOfUsers(ctx)
	}
	return 0, nil
}

// GetNumberOfTodos returns the number of todos as defined by the mock.
func (m *StorageMock) GetNumberOfTodos(ctx context.Context) (int64, error) {
	if m.OnGetNumberOfTodos != nil {
		return m.OnGetNumberOfTodos(ctx)
	}
	return 0, nil
}

// GetNumberOfBookmarks returns the number of bookmarks as defined by the mock.
func (m *StorageMock) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	if m.OnGetNumberOfBookmarks != nil {
		return m.OnGetNumberOfBookmarks(ctx)
	}
	return 0, nil
}
