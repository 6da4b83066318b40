// Package jsondb implements the storage interface on top of a single JSON
// file. All records live in an in-memory cache that is flushed to disk on
// Close. It is meant for local runs and tests, not for concurrent production
// traffic.
package jsondb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/user"
)

type JSONDB struct {
	fileName string
	Cache    CacheStruct
}

// CacheStruct is the serialized layout of the database file.
// Todos and Bookmarks are kept in insertion order, so reading them backwards
// yields creation-time-descending listings.
type CacheStruct struct {
	Users     map[string]*user.User
	Todos     []models.Todo
	Bookmarks []models.Bookmark
}

func (db *JSONDB) CommitTransaction(transaction *sql.Tx) error {
	return nil
}

func (db *JSONDB) RollbackTransaction(transaction *sql.Tx) error {
	return nil
}

func (db *JSONDB) BeginTransaction() (*sql.Tx, error) {
	return nil, nil
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Users": {},
	"Todos": [],
	"Bookmarks": []
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

func New(fileName string) (*JSONDB, error) {
	theDB := JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(theDB.fileName, &theDB.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(theDB.fileName, &theDB.Cache)
		if err != nil {
			return nil, err
		}
	}

	if theDB.Cache.Users == nil {
		theDB.Cache.Users = map[string]*user.User{}
	}

	return &theDB, nil
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

func (db *JSONDB) Close() error {
	err := writeToJSONFile(db.fileName, db.Cache)
	if err != nil {
		return err
	}

	return nil
}

// CreateUser stores a new user and returns the generated ID.
func (db *JSONDB) CreateUser(ctx context.Context, usr *user.User, transaction *sql.Tx) (string, error) {
	created := *usr
	created.ID = uuid.NewString()
	db.Cache.Users[created.ID] = &created

	return created.ID, nil
}

// GetUserByID returns the user with the given ID.
// An unknown or empty ID yields a user with an empty ID field.
func (db *JSONDB) GetUserByID(ctx context.Context, userID string, transaction *sql.Tx) (*user.User, error) {
	usr, found := db.Cache.Users[userID]
	if !found {
		return &user.User{ID: ""}, nil
	}

	return usr, nil
}

// GetUserTodos returns the user's todos ordered by creation time descending.
func (db *JSONDB) GetUserTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	result := []models.Todo{}
	for i := len(db.Cache.Todos) - 1; i >= 0; i-- {
		if db.Cache.Todos[i].UserID == userID {
			result = append(result, db.Cache.Todos[i])
		}
	}

	return result, nil
}

// InsertTodo stores a new todo with a generated ID and creation timestamp.
func (db *JSONDB) InsertTodo(ctx context.Context, todo *models.Todo, transaction *sql.Tx) (models.Todo, error) {
	created := *todo
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	db.Cache.Todos = append(db.Cache.Todos, created)

	return created, nil
}

// FindUserTodo looks up a todo by ID scoped to the owning user.
func (db *JSONDB) FindUserTodo(ctx context.Context, userID, todoID string) (models.Todo, bool, error) {
	for _, todo := range db.Cache.Todos {
		if todo.ID == todoID && todo.UserID == userID {
			return todo, true, nil
		}
	}

	return models.Todo{}, false, nil
}

// UpdateTodoCompletion sets the completion flag of the user's todo.
// Nothing happens when the todo does not exist or belongs to another user.
func (db *JSONDB) UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) error {
	for i := range db.Cache.Todos {
		if db.Cache.Todos[i].ID == todoID && db.Cache.Todos[i].UserID == userID {
			db.Cache.Todos[i].Completed = completed
		}
	}

	return nil
}

// DeleteUserTodo removes the user's todo. Deleting a nonexistent or foreign
// todo is a silent no-op.
func (db *JSONDB) DeleteUserTodo(ctx context.Context, userID, todoID string) error {
	db.Cache.Todos = funk.Filter(db.Cache.Todos, func(todo models.Todo) bool {
		return !(todo.ID == todoID && todo.UserID == userID)
	}).([]models.Todo)

	return nil
}

// GetUserBookmarks returns the user's bookmarks ordered by creation time
// descending, restricted to the given type when typeFilter is non-empty.
func (db *JSONDB) GetUserBookmarks(
	ctx context.Context,
	userID string,
	typeFilter models.BookmarkType,
) ([]models.Bookmark, error) {
	result := []models.Bookmark{}
	for i := len(db.Cache.Bookmarks) - 1; i >= 0; i-- {
		bookmark := db.Cache.Bookmarks[i]
		if bookmark.UserID != userID {
			continue
		}
		if typeFilter != "" && bookmark.Type != typeFilter {
			continue
		}
		result = append(result, bookmark)
	}

	return result, nil
}

// InsertBookmark stores a new bookmark with a generated ID and creation timestamp.
func (db *JSONDB) InsertBookmark(ctx context.Context, bookmark *models.Bookmark, transaction *sql.Tx) (models.Bookmark, error) {
	created := *bookmark
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	db.Cache.Bookmarks = append(db.Cache.Bookmarks, created)

	return created, nil
}

// DeleteUserBookmark removes the user's bookmark. Deleting a nonexistent or
// foreign bookmark is a silent no-op.
func (db *JSONDB) DeleteUserBookmark(ctx context.Context, userID, bookmarkID string) error {
	db.Cache.Bookmarks = funk.Filter(db.Cache.Bookmarks, func(bookmark models.Bookmark) bool {
		return !(bookmark.ID == bookmarkID && bookmark.UserID == userID)
	}).([]models.Bookmark)

	return nil
}

func (db *JSONDB) GetNumberOfUsers(ctx context.Context) (int64, error) {
	return int64(len(db.Cache.Users)), nil
}

func (db *JSONDB) GetNumberOfTodos(ctx context.Context) (int64, error) {
	return int64(len(db.Cache.Todos)), nil
}

func (db *JSONDB) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	return int64(len(db.Cache.Bookmarks)), nil
}
