package repository

import (
	"context"

	"todo-service/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ToDoListRepository interface {
	Create(ctx context.Context, l *models.ToDoList) error
	// FindByID loads the list with its owner's username and its tasks
	FindByID(ctx context.Context, id int64) (*models.ToDoList, error)
	FindAllByOwner(ctx context.Context, username string) ([]models.ToDoList, error)
	// Update persists name, description and active flag
	Update(ctx context.Context, l *models.ToDoList) error
	// Delete removes the list and its tasks
	Delete(ctx context.Context, id int64) error
}

var listColumns = []string{
	"l.id AS id",
	"l.name AS name",
	"l.description AS description",
	"l.created_at AS created_at",
	"l.active AS active",
	"l.user_id AS user_id",
	"u.username AS owner_username",
}

type toDoListRepo struct {
	db    sqlx.ExtContext
	sb    sq.StatementBuilderType
	tasks *taskRepo
}

func (r *toDoListRepo) selectLists() sq.SelectBuilder {
	return r.sb.Select(listColumns...).
		From("todo_lists l").
		Join("users u ON u.id = l.user_id")
}

func (r *toDoListRepo) Create(ctx context.Context, l *models.ToDoList) error {
	query, args, err := r.sb.Insert("todo_lists").
		Columns("name", "description", "created_at", "active", "user_id").
		Values(l.Name, l.Description, l.CreatedAt, l.Active, l.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&l.ID); err != nil {
		return wrapError(err, "create", "todo_lists")
	}
	return nil
}

func (r *toDoListRepo) FindByID(ctx context.Context, id int64) (*models.ToDoList, error) {
	query, args, err := r.selectLists().Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var l models.ToDoList
	if err := sqlx.GetContext(ctx, r.db, &l, query, args...); err != nil {
		return nil, wrapError(err, "find", "todo_lists")
	}

	tasks, err := r.tasks.FindByListIDs(ctx, []int64{l.ID})
	if err != nil {
		return nil, err
	}
	l.Tasks = tasks
	return &l, nil
}

func (r *toDoListRepo) FindAllByOwner(ctx context.Context, username string) ([]models.ToDoList, error) {
	query, args, err := r.selectLists().
		Where(sq.Eq{"u.username": username}).
		OrderBy("l.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var lists []models.ToDoList
	if err := sqlx.SelectContext(ctx, r.db, &lists, query, args...); err != nil {
		return nil, wrapError(err, "find_all", "todo_lists")
	}
	if len(lists) == 0 {
		return lists, nil
	}

	ids := make([]int64, 0, len(lists))
	index := make(map[int64]int, len(lists))
	for i, l := range lists {
		ids = append(ids, l.ID)
		index[l.ID] = i
	}

	tasks, err := r.tasks.FindByListIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		i := index[t.ListID]
		lists[i].Tasks = append(lists[i].Tasks, t)
	}
	return lists, nil
}

func (r *toDoListRepo) Update(ctx context.Context, l *models.ToDoList) error {
	query, args, err := r.sb.Update("todo_lists").
		Set("name", l.Name).
		Set("description", l.Description).
		Set("active", l.Active).
		Where(sq.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "update", "todo_lists")
	}
	return checkRowsAffected(res, "update", "todo_lists")
}

func (r *toDoListRepo) Delete(ctx context.Context, id int64) error {
	tasks, args, err := r.sb.Delete("tasks").Where(sq.Eq{"list_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, tasks, args...); err != nil {
		return wrapError(err, "delete", "tasks")
	}

	lists, args, err := r.sb.Delete("todo_lists").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, lists, args...)
	if err != nil {
		return wrapError(err, "delete", "todo_lists")
	}
	return checkRowsAffected(res, "delete", "todo_lists")
}
