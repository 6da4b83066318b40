package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/daybook/internal/mockstorage"
	"github.com/patric-chuzhbe/daybook/internal/models"
)

func TestPingPropagatesStorageError(t *testing.T) {
	storageMock := &mockstorage.StorageMock{}
	storageMock.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	err := New(storageMock).Ping(context.Background())
	assert.Error(t, err)
	storageMock.AssertExpectations(t)
}

func TestGetInternalStatsPropagatesStorageError(t *testing.T) {
	storageMock := &mockstorage.StorageMock{
		OnGetNumberOfUsers: func(ctx context.Context) (int64, error) {
			return 0, errors.New("counting failed")
		},
	}

	_, err := New(storageMock).GetInternalStats(context.Background())
	assert.Error(t, err)
}

func TestCreateTodoRollsBackOnInsertError(t *testing.T) {
	storageMock := &mockstorage.StorageMock{}
	storageMock.On("BeginTransaction").Return(nil, nil)
	storageMock.On("InsertTodo", mock.Anything, mock.Anything, mock.Anything).
		Return(models.Todo{}, errors.New("insert failed"))
	storageMock.On("RollbackTransaction", mock.Anything).Return(nil)

	_, err := New(storageMock).CreateTodo(context.Background(), userAlice, models.CreateTodoRequest{Title: "doomed"})
	require.Error(t, err)

	storageMock.AssertCalled(t, "RollbackTransaction", mock.Anything)
	storageMock.AssertNotCalled(t, "CommitTransaction", mock.Anything)
}

func TestToggleTodoPropagatesLookupError(t *testing.T) {
	storageMock := &mockstorage.StorageMock{}
	storageMock.On("FindUserTodo", mock.Anything, userAlice, "some-id").
		Return(models.Todo{}, false, errors.New("lookup failed"))

	_, err := New(storageMock).ToggleTodo(context.Background(), userAlice, "some-id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
