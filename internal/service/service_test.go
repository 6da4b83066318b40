package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/daybook/internal/db/memorystorage"
	"github.com/patric-chuzhbe/daybook/internal/models"
)

const (
	userAlice = "2f1b42c2-0000-0000-0000-000000000001"
	userBob   = "2f1b42c2-0000-0000-0000-000000000002"
)

func newTestService(t *testing.T) *Service {
	theStorage, err := memorystorage.New()
	require.NoError(t, err)

	return New(theStorage)
}

func TestCreateTodoAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Completed)
	assert.Equal(t, models.PriorityMedium, first.Priority)
	assert.Nil(t, first.DueDate)

	second, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{
		Title:       "  write report  ",
		Description: "quarterly numbers",
		Priority:    "high",
		DueDate:     "2025-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "write report", second.Title)
	assert.Equal(t, models.PriorityHigh, second.Priority)
	require.NotNil(t, second.DueDate)
	assert.Equal(t, 2025, second.DueDate.Year())

	todos, err := svc.ListTodos(ctx, userAlice)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, second.ID, todos[0].ID, "the newest todo must come first")
	assert.Equal(t, first.ID, todos[1].ID)
}

func TestCreateTodoValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	type tTestCase struct {
		name    string
		request models.CreateTodoRequest
	}
	testCases := []tTestCase{
		{
			name:    "empty_title",
			request: models.CreateTodoRequest{Title: ""},
		},
		{
			name:    "whitespace_only_title",
			request: models.CreateTodoRequest{Title: "   \t "},
		},
		{
			name:    "unparseable_due_date",
			request: models.CreateTodoRequest{Title: "ok", DueDate: "next tuesday"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.CreateTodo(ctx, userAlice, testCase.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateTodoUnrecognizedPriorityFallsBack(t *testing.T) {
	svc := newTestService(t)

	todo, err := svc.CreateTodo(context.Background(), userAlice, models.CreateTodoRequest{
		Title:    "triage inbox",
		Priority: "urgent",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
}

func TestCreateTodoDueDateLayouts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	type tTestCase struct {
		name    string
		dueDate string
	}
	testCases := []tTestCase{
		{name: "rfc3339", dueDate: time.Now().Format(time.RFC3339)},
		{name: "datetime_local", dueDate: "2025-06-01T09:30"},
		{name: "bare_date", dueDate: "2025-06-01"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			todo, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{
				Title:   "dated",
				DueDate: testCase.dueDate,
			})
			require.NoError(t, err)
			assert.NotNil(t, todo.DueDate)
		})
	}
}

func TestToggleTodoTwiceRestoresState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "flip me"})
	require.NoError(t, err)

	toggled, err := svc.ToggleTodo(ctx, userAlice, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	restored, err := svc.ToggleTodo(ctx, userAlice, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.Completed, restored.Completed)
}

func TestToggleTodoNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "mine"})
	require.NoError(t, err)

	// A foreign id and a nonexistent id must be indistinguishable.
	_, err = svc.ToggleTodo(ctx, userBob, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ToggleTodo(ctx, userAlice, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTodoIsIdempotentNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "keep me"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, userBob, todo.ID), "deleting a foreign todo must not fail")
	require.NoError(t, svc.DeleteTodo(ctx, userAlice, "no-such-id"), "deleting a nonexistent todo must not fail")

	todos, err := svc.ListTodos(ctx, userAlice)
	require.NoError(t, err)
	require.Len(t, todos, 1, "no-op deletes must not affect other records")

	require.NoError(t, svc.DeleteTodo(ctx, userAlice, todo.ID))
	require.NoError(t, svc.DeleteTodo(ctx, userAlice, todo.ID), "a duplicate delete must not fail")

	todos, err = svc.ListTodos(ctx, userAlice)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	aliceTodo, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "alice's"})
	require.NoError(t, err)
	bobTodo, err := svc.CreateTodo(ctx, userBob, models.CreateTodoRequest{Title: "bob's"})
	require.NoError(t, err)

	aliceTodos, err := svc.ListTodos(ctx, userAlice)
	require.NoError(t, err)
	require.Len(t, aliceTodos, 1)
	assert.Equal(t, aliceTodo.ID, aliceTodos[0].ID)

	bobTodos, err := svc.ListTodos(ctx, userBob)
	require.NoError(t, err)
	require.Len(t, bobTodos, 1)
	assert.Equal(t, bobTodo.ID, bobTodos[0].ID)
}

func TestCreateBookmarkAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title: "search",
		URL:   "https://google.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkTypeGeneric, first.Type)

	second, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title:       "talk",
		URL:         "https://youtube.com/watch?v=dQw4w9WgXcQ",
		Type:        "youtube",
		Description: "conference recording",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkTypeYoutube, second.Type)

	bookmarks, err := svc.ListBookmarks(ctx, userAlice, "")
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	assert.Equal(t, second.ID, bookmarks[0].ID, "the newest bookmark must come first")
}

func TestCreateBookmarkValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{Title: "  ", URL: "https://a.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{Title: "a", URL: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBookmarkDoesNotValidateURLAgainstType(t *testing.T) {
	svc := newTestService(t)

	// Classification is advisory and display-time only.
	bookmark, err := svc.CreateBookmark(context.Background(), userAlice, models.CreateBookmarkRequest{
		Title: "mislabeled",
		URL:   "https://example.com/not-a-video",
		Type:  "youtube",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkTypeYoutube, bookmark.Type)
}

func TestListBookmarksTypeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title: "video",
		URL:   "https://youtube.com/watch?v=dQw4w9WgXcQ",
		Type:  "youtube",
	})
	require.NoError(t, err)
	_, err = svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title: "plain",
		URL:   "https://example.com",
	})
	require.NoError(t, err)

	filtered, err := svc.ListBookmarks(ctx, userAlice, "youtube")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.BookmarkTypeYoutube, filtered[0].Type)

	all, err := svc.ListBookmarks(ctx, userAlice, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteBookmarkIsIdempotentNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bookmark, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title: "mine",
		URL:   "https://example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBookmark(ctx, userBob, bookmark.ID))

	bookmarks, err := svc.ListBookmarks(ctx, userAlice, "")
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)

	require.NoError(t, svc.DeleteBookmark(ctx, userAlice, bookmark.ID))
	require.NoError(t, svc.DeleteBookmark(ctx, userAlice, bookmark.ID))

	bookmarks, err = svc.ListBookmarks(ctx, userAlice, "")
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestBookmarkOwnershipIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{
		Title: "alice's",
		URL:   "https://a.example.com",
	})
	require.NoError(t, err)

	bobBookmarks, err := svc.ListBookmarks(ctx, userBob, "")
	require.NoError(t, err)
	assert.Empty(t, bobBookmarks)
}

func TestGetInternalStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, userAlice, models.CreateTodoRequest{Title: "one"})
	require.NoError(t, err)
	_, err = svc.CreateBookmark(ctx, userAlice, models.CreateBookmarkRequest{Title: "two", URL: "https://example.com"})
	require.NoError(t, err)

	stats, err := svc.GetInternalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Todos)
	assert.Equal(t, int64(1), stats.Bookmarks)
}
