// Package memorystorage reuses the jsondb cache without the backing file.
// It is the storage of last resort when neither a database DSN nor a file
// name is configured, and the default backend for tests.
package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/daybook/internal/db/jsondb"
	"github.com/patric-chuzhbe/daybook/internal/models"
	"github.com/patric-chuzhbe/daybook/internal/user"
)

type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{
				Users:     map[string]*user.User{},
				Todos:     []models.Todo{},
				Bookmarks: []models.Bookmark{},
			},
		},
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
