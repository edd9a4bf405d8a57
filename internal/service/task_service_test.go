package service

import (
	"context"
	"testing"
	"time"

	"todolist-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskFixture(t *testing.T) (ITaskService, int64, int64) {
	t.Helper()
	factory := newTestFactory(t)
	authSvc := NewAuthService(factory, nil, 5*time.Second)
	taskSvc := NewTaskService(factory, nil, 5*time.Second)

	alice := registerUser(t, authSvc, "alice", "secret123")
	bob := registerUser(t, authSvc, "bob", "secret456")
	return taskSvc, alice, bob
}

func TestAddAndList(t *testing.T) {
	svc, alice, bob := newTestTaskFixture(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)
	second, err := svc.Add(ctx, alice, "walk dog")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, alice, OrderIDAsc)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.Id, tasks[0].Id)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.Equal(t, second.Id, tasks[1].Id)
	assert.Equal(t, "walk dog", tasks[1].Text)

	// the other account sees nothing
	tasks, err = svc.List(ctx, bob, OrderIDAsc)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestAddTrimsText(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)

	task, err := svc.Add(context.Background(), alice, "  buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Text)
}

func TestAddRejectsEmptyText(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, alice, "")
	assert.ErrorIs(t, err, apperror.ErrEmptyText)

	_, err = svc.Add(ctx, alice, "   \t  ")
	assert.ErrorIs(t, err, apperror.ErrEmptyText)
}

func TestEdit(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)

	require.NoError(t, svc.Edit(ctx, alice, task.Id, "buy oat milk"))

	tasks, err := svc.List(ctx, alice, OrderIDAsc)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy oat milk", tasks[0].Text)
}

func TestEditRejectsEmptyText(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Edit(ctx, alice, task.Id, "   "), apperror.ErrEmptyText)
}

func TestEditUnknownTask(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)

	err := svc.Edit(context.Background(), alice, 9999, "new text")
	assert.ErrorIs(t, err, apperror.ErrTaskNotFound)
}

func TestEditForeignTask(t *testing.T) {
	svc, alice, bob := newTestTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)

	// not-owned answers exactly like missing
	err = svc.Edit(ctx, bob, task.Id, "hijacked")
	assert.ErrorIs(t, err, apperror.ErrTaskNotFound)

	tasks, err := svc.List(ctx, alice, OrderIDAsc)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
}

func TestRemove(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, alice, task.Id))

	tasks, err := svc.List(ctx, alice, OrderIDAsc)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// deleting again reports not found
	assert.ErrorIs(t, svc.Remove(ctx, alice, task.Id), apperror.ErrTaskNotFound)
}

func TestRemoveForeignTask(t *testing.T) {
	svc, alice, bob := newTestTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, alice, "buy milk")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, bob, task.Id), apperror.ErrTaskNotFound)

	tasks, err := svc.List(ctx, alice, OrderIDAsc)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestListNewestFirst(t *testing.T) {
	svc, alice, _ := newTestTaskFixture(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Add(ctx, alice, text)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond) // distinct created_at
	}

	tasks, err := svc.List(ctx, alice, OrderNewestFirst)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Text)
	assert.Equal(t, "first", tasks[2].Text)
}
