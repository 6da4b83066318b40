package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/daybook/internal/models"
)

func Test(t *testing.T) {
	t.Run("The base memorystorage package test", func(t *testing.T) {
		theStorage, err := New()
		require.NoError(t, err, "The memorystorage.New() should not return error")

		inserted, err := theStorage.InsertTodo(context.Background(), &models.Todo{
			UserID: "u1",
			Title:  "some todo",
		}, nil)
		assert.NoError(t, err, "The `theStorage.InsertTodo()` should not return error")

		found, ok, err := theStorage.FindUserTodo(context.Background(), "u1", inserted.ID)
		assert.NoError(t, err, "The `theStorage.FindUserTodo()` should not return error")
		assert.True(t, ok)
		assert.Equal(t, "some todo", found.Title, "Should be equal to `some todo`")

		err = theStorage.Ping(context.Background())
		assert.NoError(t, err, "The memorystorage.Ping() should not return error")

		err = theStorage.Close()
		assert.NoError(t, err, "The memorystorage.Close() should not return error")
	})
}
