package repository

import (
	"context"
	"testing"
	"time"

	"todo-service/database/dbtest"
	"todo-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(dbtest.New(t))
}

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	now := models.Now()
	u := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  "hash",
		Email:     username + "@x.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func seedList(t *testing.T, s *Store, owner *models.User, name string) *models.ToDoList {
	t.Helper()
	l := &models.ToDoList{Name: name, CreatedAt: models.Now(), Active: true, UserID: owner.ID}
	require.NoError(t, s.Lists.Create(context.Background(), l))
	return l
}

func seedTask(t *testing.T, s *Store, list *models.ToDoList, name string) *models.Task {
	t.Helper()
	task := &models.Task{Name: name, ListID: list.ID, CreatedAt: models.Now(), Active: true}
	require.NoError(t, s.Tasks.Create(context.Background(), task))
	return task
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")

	t.Run("FindByUsername", func(t *testing.T) {
		u, err := s.Users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, u.ID)
		assert.Equal(t, "alice@x.com", u.Email)
		assert.True(t, u.CreatedAt.Equal(alice.CreatedAt))
	})

	t.Run("FindByUsernameMissing", func(t *testing.T) {
		_, err := s.Users.FindByUsername(ctx, "bob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ExistsByUsername", func(t *testing.T) {
		ok, err := s.Users.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Users.ExistsByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := *alice
		dup.ID = uuid.NewString()
		err := s.Users.Create(ctx, &dup)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("Update", func(t *testing.T) {
		alice.Email = "new@x.com"
		require.NoError(t, s.Users.Update(ctx, alice))

		u, err := s.Users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", u.Email)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := s.Users.Update(ctx, &models.User{ID: "nope"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	aliceList := seedList(t, s, alice, "Groceries")
	seedTask(t, s, aliceList, "Milk")
	bobList := seedList(t, s, bob, "Chores")
	bobTask := seedTask(t, s, bobList, "Dishes")

	err := s.WithTransaction(ctx, func(repos Repositories) error {
		return repos.Users.Delete(ctx, alice.ID)
	})
	require.NoError(t, err)

	_, err = s.Users.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Lists.FindByID(ctx, aliceList.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var n int
	require.NoError(t, s.DB().Get(&n, "SELECT COUNT(*) FROM tasks"))
	assert.Equal(t, 1, n)

	got, err := s.Tasks.FindByID(ctx, bobTask.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.OwnerUsername)
}

func TestToDoListRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	desc := "weekly shop"
	groceries := &models.ToDoList{Name: "Groceries", Description: &desc, CreatedAt: models.Now(), Active: true, UserID: alice.ID}
	require.NoError(t, s.Lists.Create(ctx, groceries))
	assert.NotZero(t, groceries.ID)

	milk := seedTask(t, s, groceries, "Milk")
	eggs := seedTask(t, s, groceries, "Eggs")
	chores := seedList(t, s, alice, "Chores")
	seedList(t, s, bob, "Bob's")

	t.Run("FindByID", func(t *testing.T) {
		l, err := s.Lists.FindByID(ctx, groceries.ID)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", l.Name)
		require.NotNil(t, l.Description)
		assert.Equal(t, desc, *l.Description)
		assert.Equal(t, "alice", l.OwnerUsername)
		assert.True(t, l.Active)
		assert.True(t, l.CreatedAt.Equal(groceries.CreatedAt))
		require.Len(t, l.Tasks, 2)
		assert.Equal(t, milk.ID, l.Tasks[0].ID)
		assert.Equal(t, eggs.ID, l.Tasks[1].ID)
	})

	t.Run("FindAllByOwner", func(t *testing.T) {
		lists, err := s.Lists.FindAllByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, lists, 2)
		assert.Equal(t, groceries.ID, lists[0].ID)
		assert.Len(t, lists[0].Tasks, 2)
		assert.Equal(t, chores.ID, lists[1].ID)
		assert.Empty(t, lists[1].Tasks)

		none, err := s.Lists.FindAllByOwner(ctx, "carol")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Update", func(t *testing.T) {
		chores.Name = "House"
		chores.Active = false
		require.NoError(t, s.Lists.Update(ctx, chores))

		l, err := s.Lists.FindByID(ctx, chores.ID)
		require.NoError(t, err)
		assert.Equal(t, "House", l.Name)
		assert.False(t, l.Active)
		assert.Nil(t, l.Description)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Lists.Delete(ctx, groceries.ID))

		_, err := s.Lists.FindByID(ctx, groceries.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Tasks.FindByID(ctx, milk.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Lists.Delete(ctx, groceries.ID), ErrNotFound)
	})
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	list := seedList(t, s, alice, "Groceries")
	task := seedTask(t, s, list, "Milk")

	got, err := s.Tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, list.ID, got.ListID)
	assert.Equal(t, "alice", got.OwnerUsername)
	assert.Nil(t, got.CompletedAt)
	assert.True(t, got.Active)

	completed := models.Now().Add(time.Minute)
	got.Complete(completed)
	require.NoError(t, s.Tasks.Update(ctx, got))

	again, err := s.Tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, again.CompletedAt.Equal(completed))
	assert.False(t, again.Active)

	require.NoError(t, s.Tasks.Delete(ctx, task.ID))
	_, err = s.Tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID), ErrNotFound)

	tasks, err := s.Tasks.FindByListIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskRequiresExistingList(t *testing.T) {
	s := newTestStore(t)
	err := s.Tasks.Create(context.Background(), &models.Task{Name: "orphan", ListID: 42, CreatedAt: models.Now(), Active: true})
	assert.ErrorIs(t, err, ErrForeignKey)
}
