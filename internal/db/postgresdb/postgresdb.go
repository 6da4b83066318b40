// Package postgresdb provides a PostgreSQL-based implementation of the storage
// interface for persisting users, todos, and bookmarks.
// Every record query is scoped by the owning user's ID.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/user"
)

// PostgresDB is a PostgreSQL-backed implementation of the daybook storage.
// It handles all persistence operations via a PostgreSQL database connection.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type initOptions struct {
	DBPreReset bool
}

// InitOption defines a functional option for configuring database initialization.
type InitOption func(*initOptions)

// WithDBPreReset enables or disables resetting the database schema before migration.
// It can be used for test setups or development purposes.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresDB instance.
// Optionally accepts initialization options, such as WithDBPreReset.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			return nil,
				fmt.Errorf(
					"in internal/db/postgresdb/postgresdb.go/New(): error while `result.resetDB()` calling: %w",
					err,
				)
		}
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	return result, nil
}

// CreateUser inserts a new user record into the database.
// Returns the created user ID or an error if insertion fails.
func (db *PostgresDB) CreateUser(ctx context.Context, usr *user.User, transaction *sql.Tx) (string, error) {
	var database queryer
	if transaction == nil {
		database = db.database
	} else {
		database = transaction
	}

	row := database.QueryRowContext(
		ctx,
		`INSERT INTO users (name, email, avatar_url) VALUES ($1, $2, $3) RETURNING id`,
		usr.Name,
		usr.Email,
		usr.AvatarURL,
	)
	var userIDFromDB string
	err := row.Scan(&userIDFromDB)
	if err != nil {
		return "", err
	}

	return userIDFromDB, nil
}

// GetUserByID fetches a user by their UUID from the database.
// If the user does not exist, it returns a user with an empty ID field.
func (db *PostgresDB) GetUserByID(ctx context.Context, userID string, transaction *sql.Tx) (*user.User, error) {
	var database queryer

	if transaction == nil {
		database = db.database
	} else {
		database = transaction
	}

	if userID == "" {
		return &user.User{ID: ""}, nil
	}

	row := database.QueryRowContext(
		ctx,
		`SELECT id, name, email, avatar_url FROM users WHERE id = $1`,
		userID,
	)
	usr := &user.User{}
	err := row.Scan(&usr.ID, &usr.Name, &usr.Email, &usr.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &user.User{ID: ""}, nil
		}
		return &user.User{ID: ""}, err
	}

	return usr, nil
}

// GetUserTodos retrieves the user's todos ordered by creation time descending.
func (db *PostgresDB) GetUserTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`
			SELECT id, user_id, title, COALESCE(description, ''), completed, priority, due_date, created_at
				FROM todos
				WHERE user_id = $1
				ORDER BY created_at DESC
		`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		err = rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&todo.DueDate,
			&todo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		result = append(result, todo)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// InsertTodo creates a new todo row owned by the record's user.
// The ID and creation timestamp are assigned by the database.
func (db *PostgresDB) InsertTodo(ctx context.Context, todo *models.Todo, transaction *sql.Tx) (models.Todo, error) {
	var database queryer
	if transaction == nil {
		database = db.database
	} else {
		database = transaction
	}

	row := database.QueryRowContext(
		ctx,
		`
			INSERT INTO todos (user_id, title, description, completed, priority, due_date)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at
		`,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
	)

	created := *todo
	err := row.Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return models.Todo{}, err
	}

	return created, nil
}

// FindUserTodo looks up a todo by ID scoped to the owning user.
// A todo of another user is indistinguishable from a missing one.
func (db *PostgresDB) FindUserTodo(ctx context.Context, userID, todoID string) (models.Todo, bool, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			SELECT id, user_id, title, COALESCE(description, ''), completed, priority, due_date, created_at
				FROM todos
				WHERE id = $1 AND user_id = $2
		`,
		todoID,
		userID,
	)

	var todo models.Todo
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, false, nil
		}
		return models.Todo{}, false, err
	}

	return todo, true, nil
}

// UpdateTodoCompletion sets the completion flag of the user's todo.
func (db *PostgresDB) UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) error {
	_, err := db.database.ExecContext(
		ctx,
		`UPDATE todos SET completed = $1 WHERE id = $2 AND user_id = $3`,
		completed,
		todoID,
		userID,
	)

	return err
}

// DeleteUserTodo removes the user's todo.
// Deleting a nonexistent or foreign todo affects zero rows and is not an error.
func (db *PostgresDB) DeleteUserTodo(ctx context.Context, userID, todoID string) error {
	_, err := db.database.ExecContext(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		todoID,
		userID,
	)

	return err
}

// GetUserBookmarks retrieves the user's bookmarks ordered by creation time
// descending, restricted to the given type when typeFilter is non-empty.
func (db *PostgresDB) GetUserBookmarks(
	ctx context.Context,
	userID string,
	typeFilter models.BookmarkType,
) ([]models.Bookmark, error) {
	query := `
		SELECT id, user_id, title, url, type, COALESCE(description, ''), created_at
			FROM bookmarks
			WHERE user_id = $1
	`
	args := []interface{}{userID}
	if typeFilter != "" {
		query += ` AND type = $2`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Bookmark{}
	for rows.Next() {
		var bookmark models.Bookmark
		err = rows.Scan(
			&bookmark.ID,
			&bookmark.UserID,
			&bookmark.Title,
			&bookmark.URL,
			&bookmark.Type,
			&bookmark.Description,
			&bookmark.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		result = append(result, bookmark)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// InsertBookmark creates a new bookmark row owned by the record's user.
// The ID and creation timestamp are assigned by the database.
func (db *PostgresDB) InsertBookmark(ctx context.Context, bookmark *models.Bookmark, transaction *sql.Tx) (models.Bookmark, error) {
	var database queryer
	if transaction == nil {
		database = db.database
	} else {
		database = transaction
	}

	row := database.QueryRowContext(
		ctx,
		`
			INSERT INTO bookmarks (user_id, title, url, type, description)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at
		`,
		bookmark.UserID,
		bookmark.Title,
		bookmark.URL,
		bookmark.Type,
		bookmark.Description,
	)

	created := *bookmark
	err := row.Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return models.Bookmark{}, err
	}

	return created, nil
}

// DeleteUserBookmark removes the user's bookmark.
// Deleting a nonexistent or foreign bookmark affects zero rows and is not an error.
func (db *PostgresDB) DeleteUserBookmark(ctx context.Context, userID, bookmarkID string) error {
	_, err := db.database.ExecContext(
		ctx,
		`DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`,
		bookmarkID,
		userID,
	)

	return err
}

func (db *PostgresDB) countRows(ctx context.Context, query string) (int64, error) {
	row := db.database.QueryRowContext(ctx, query)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// GetNumberOfUsers returns the total amount of registered users.
func (db *PostgresDB) GetNumberOfUsers(ctx context.Context) (int64, error) {
	return db.countRows(ctx, `SELECT COUNT(*) FROM users`)
}

// GetNumberOfTodos returns the total amount of stored todos.
func (db *PostgresDB) GetNumberOfTodos(ctx context.Context) (int64, error) {
	return db.countRows(ctx, `SELECT COUNT(*) FROM todos`)
}

// GetNumberOfBookmarks returns the total amount of stored bookmarks.
func (db *PostgresDB) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	return db.countRows(ctx, `SELECT COUNT(*) FROM bookmarks`)
}

// CommitTransaction commits the given SQL transaction.
// Returns an error if the commit operation fails.
func (db *PostgresDB) CommitTransaction(transaction *sql.Tx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred while committing transaction: %v", r)
		}
	}()

	return transaction.Commit()
}

// RollbackTransaction rolls back the given SQL transaction.
// If rollback fails, the returned error describes the issue.
func (db *PostgresDB) RollbackTransaction(transaction *sql.Tx) error {
	return transaction.Rollback()
}

// BeginTransaction starts a new SQL transaction and returns it.
// The caller is responsible for committing or rolling it back.
func (db *PostgresDB) BeginTransaction() (*sql.Tx, error) {
	return db.database.Begin()
}

// Ping verifies connectivity with the PostgreSQL database within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	err := db.database.Close()
	if err != nil {
		return err
	}

	return nil
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			DO $$
			DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`,
	)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/resetDB(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}
	return nil
}
