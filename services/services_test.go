package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"todo-service/database/dbtest"
	"todo-service/models"
	"todo-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryCache struct {
	entries map[string][]byte
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(key string) ([]byte, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *memoryCache) Set(key string, value []byte, _ time.Duration) {
	c.entries[key] = value
}

func (c *memoryCache) Delete(key string) {
	delete(c.entries, key)
}

type fixture struct {
	store *repository.Store
	cache *memoryCache
	users *userService
	lists *toDoListService
	tasks *taskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(dbtest.New(t))
	mapper := models.NewMapper("http://localhost:8080")
	c := newMemoryCache()
	return &fixture{
		store: store,
		cache: c,
		users: NewUserService(store, mapper, UserOptions{BcryptCost: bcrypt.MinCost, Cache: c, CacheTTL: time.Minute}).(*userService),
		lists: NewToDoListService(store, mapper).(*toDoListService),
		tasks: NewTaskService(store, mapper).(*taskService),
	}
}

func (f *fixture) register(t *testing.T, username string) *models.UserDto {
	t.Helper()
	u, err := f.users.Create(context.Background(), models.RegisterUserRequest{
		Username: username,
		Password: "pw1",
		Email:    username + "@x.com",
	})
	require.NoError(t, err)
	return u
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize("alice", "alice"))
	assert.ErrorIs(t, Authorize("bob", "alice"), ErrAccessDenied)
	assert.ErrorIs(t, Authorize("", ""), ErrAccessDenied)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice")
	assert.NotEmpty(t, alice.ID)
	assert.Equal(t, "alice", alice.Username)

	t.Run("DuplicateRegistration", func(t *testing.T) {
		_, err := f.users.Create(ctx, models.RegisterUserRequest{Username: "alice", Password: "x", Email: "a@x.com"})
		assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	})

	t.Run("PasswordIsHashed", func(t *testing.T) {
		u, err := f.store.Users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "pw1", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw1")))
	})

	t.Run("GetByUsernameReadsThroughCache", func(t *testing.T) {
		got, err := f.users.GetByUsername(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.Equal(t, alice, got)
		assert.Contains(t, f.cache.entries, "user:alice")

		again, err := f.users.GetByUsername(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.Equal(t, alice, again)
		assert.Equal(t, 1, f.cache.hits)
	})

	t.Run("GetByUsernameForeignPrincipal", func(t *testing.T) {
		_, err := f.users.GetByUsername(ctx, "bob", "alice")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("ChangeEmailInvalidatesCache", func(t *testing.T) {
		dto, err := f.users.ChangeEmail(ctx, "alice", "alice", "alice@y.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@y.com", dto.Email)
		assert.NotContains(t, f.cache.entries, "user:alice")

		got, err := f.users.GetByUsername(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@y.com", got.Email)
	})

	t.Run("Authenticate", func(t *testing.T) {
		u, err := f.users.Authenticate(ctx, "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, u.ID)

		_, err = f.users.Authenticate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = f.users.Authenticate(ctx, "nobody", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("ChangePassword", func(t *testing.T) {
		require.NoError(t, f.users.ChangePassword(ctx, "alice", "alice", "pw2"))

		_, err := f.users.Authenticate(ctx, "alice", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = f.users.Authenticate(ctx, "alice", "pw2")
		assert.NoError(t, err)

		assert.ErrorIs(t, f.users.ChangePassword(ctx, "bob", "alice", "pw3"), ErrAccessDenied)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := f.users.Exists(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = f.users.Exists(ctx, "carol")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestChangeUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")

	_, err := f.users.ChangeUsername(ctx, "alice", "alice", "bob")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	_, err = f.users.ChangeUsername(ctx, "bob", "alice", "carol")
	assert.ErrorIs(t, err, ErrAccessDenied)

	dto, err := f.users.ChangeUsername(ctx, "alice", "alice", "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", dto.Username)

	ok, err := f.users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	// Lists follow the user through the rename.
	_, err = f.lists.Create(ctx, models.ToDoListDto{Name: "Groceries"}, "alicia")
	require.NoError(t, err)
	lists, err := f.lists.GetAllForUser(ctx, "alicia")
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	list, err := f.lists.Create(ctx, models.ToDoListDto{Name: "Groceries"}, "alice")
	require.NoError(t, err)
	_, err = f.lists.AddTask(ctx, *list.ID, "alice", models.TaskDto{Name: "Milk"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.users.Delete(ctx, "bob", "alice"), ErrAccessDenied)
	require.NoError(t, f.users.Delete(ctx, "alice", "alice"))

	_, err = f.store.Users.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var n int
	require.NoError(t, f.store.DB().Get(&n, "SELECT COUNT(*) FROM tasks"))
	assert.Zero(t, n)
	require.NoError(t, f.store.DB().Get(&n, "SELECT COUNT(*) FROM todo_lists"))
	assert.Zero(t, n)

	_, err = f.users.GetByUsername(ctx, "alice", "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToDoListService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")

	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	f.lists.now = func() time.Time { return fixed }

	created, err := f.lists.Create(ctx, models.ToDoListDto{Name: "Groceries"}, "alice")
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	id := *created.ID
	assert.True(t, *created.Active)
	assert.Equal(t, "01-03-2025 09:30:00", created.CreatedAt.String())
	assert.Equal(t, "http://localhost:8080/api/list/"+strconv.FormatInt(id, 10), created.URL)
	assert.NotNil(t, created.Tasks)
	assert.Empty(t, created.Tasks)

	t.Run("OwnerOnly", func(t *testing.T) {
		_, err := f.lists.GetByID(ctx, id, "bob")
		assert.ErrorIs(t, err, ErrToDoListNotFound)
		_, err = f.lists.SetActive(ctx, id, "bob", false)
		assert.ErrorIs(t, err, ErrToDoListNotFound)
		assert.ErrorIs(t, f.lists.Delete(ctx, id, "bob"), ErrToDoListNotFound)

		bobs, err := f.lists.GetAllForUser(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, bobs)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := f.lists.GetByID(ctx, 9999, "alice")
		assert.ErrorIs(t, err, ErrToDoListNotFound)
	})

	t.Run("UpdateNameAndDescription", func(t *testing.T) {
		desc := "weekly"
		active := false
		dto, err := f.lists.UpdateNameAndDescription(ctx, id, models.ToDoListDto{Name: "Food", Description: &desc, Active: &active}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Food", dto.Name)
		assert.Equal(t, "weekly", *dto.Description)
		assert.True(t, *dto.Active)
		assert.Equal(t, created.CreatedAt.String(), dto.CreatedAt.String())
	})

	t.Run("SetActive", func(t *testing.T) {
		dto, err := f.lists.SetActive(ctx, id, "alice", false)
		require.NoError(t, err)
		assert.False(t, *dto.Active)

		got, err := f.lists.GetByID(ctx, id, "alice")
		require.NoError(t, err)
		assert.False(t, *got.Active)
	})

	t.Run("AddAndRemoveTask", func(t *testing.T) {
		dto, err := f.lists.AddTask(ctx, id, "alice", models.TaskDto{Name: "Milk"})
		require.NoError(t, err)
		require.Len(t, dto.Tasks, 1)
		milk := dto.Tasks[0]
		assert.Equal(t, "Milk", milk.Name)
		assert.True(t, *milk.Active)
		assert.Nil(t, milk.CompletedAt)
		assert.Equal(t, id, *milk.ListID)

		dto, err = f.lists.AddTask(ctx, id, "alice", models.TaskDto{Name: "Eggs"})
		require.NoError(t, err)
		require.Len(t, dto.Tasks, 2)
		assert.Equal(t, "Eggs", dto.Tasks[1].Name)

		_, err = f.lists.AddTask(ctx, id, "bob", models.TaskDto{Name: "Sneaky"})
		assert.ErrorIs(t, err, ErrToDoListNotFound)

		_, err = f.lists.RemoveTask(ctx, id, "alice", 9999)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		got, err := f.lists.GetByID(ctx, id, "alice")
		require.NoError(t, err)
		require.Len(t, got.Tasks, 2)

		dto, err = f.lists.RemoveTask(ctx, id, "alice", *milk.ID)
		require.NoError(t, err)
		require.Len(t, dto.Tasks, 1)
		assert.Equal(t, "Eggs", dto.Tasks[0].Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, f.lists.Delete(ctx, id, "alice"))
		_, err := f.lists.GetByID(ctx, id, "alice")
		assert.ErrorIs(t, err, ErrToDoListNotFound)
	})
}

func TestRemoveTaskFromOtherList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	a, err := f.lists.Create(ctx, models.ToDoListDto{Name: "A"}, "alice")
	require.NoError(t, err)
	b, err := f.lists.Create(ctx, models.ToDoListDto{Name: "B"}, "alice")
	require.NoError(t, err)
	withTask, err := f.lists.AddTask(ctx, *b.ID, "alice", models.TaskDto{Name: "x"})
	require.NoError(t, err)

	_, err = f.lists.RemoveTask(ctx, *a.ID, "alice", *withTask.Tasks[0].ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")

	list, err := f.lists.Create(ctx, models.ToDoListDto{Name: "Groceries"}, "alice")
	require.NoError(t, err)
	list, err = f.lists.AddTask(ctx, *list.ID, "alice", models.TaskDto{Name: "Milk"})
	require.NoError(t, err)
	id := *list.Tasks[0].ID

	t.Run("GetByID", func(t *testing.T) {
		dto, err := f.tasks.GetByID(ctx, id, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Milk", dto.Name)
		assert.Equal(t, "http://localhost:8080/api/task/"+strconv.FormatInt(id, 10), dto.URL)

		_, err = f.tasks.GetByID(ctx, id, "bob")
		assert.ErrorIs(t, err, ErrTaskNotFound)
		_, err = f.tasks.GetByID(ctx, 9999, "alice")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("UpdateNameAndDescription", func(t *testing.T) {
		desc := "2 litres"
		dto, err := f.tasks.UpdateNameAndDescription(ctx, id, models.TaskDto{Name: "Oat milk", Description: &desc}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Oat milk", dto.Name)
		assert.Equal(t, desc, *dto.Description)

		_, err = f.tasks.UpdateNameAndDescription(ctx, id, models.TaskDto{Name: "x"}, "bob")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("CompleteIsOneWay", func(t *testing.T) {
		first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		f.tasks.now = func() time.Time { return first }

		dto, err := f.tasks.Complete(ctx, id, "alice")
		require.NoError(t, err)
		assert.False(t, *dto.Active)
		require.NotNil(t, dto.CompletedAt)
		assert.Equal(t, "01-03-2025 10:00:00", dto.CompletedAt.String())

		f.tasks.now = func() time.Time { return first.Add(time.Hour) }
		_, err = f.tasks.Complete(ctx, id, "alice")
		var done *TaskAlreadyCompletedError
		require.True(t, errors.As(err, &done))
		assert.True(t, done.CompletedAt.Equal(first))
		assert.Contains(t, err.Error(), "01-03-2025 10:00:00")

		got, err := f.tasks.GetByID(ctx, id, "alice")
		require.NoError(t, err)
		assert.Equal(t, "01-03-2025 10:00:00", got.CompletedAt.String())
	})

	t.Run("CompleteForeignTask", func(t *testing.T) {
		_, err := f.tasks.Complete(ctx, id, "bob")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
