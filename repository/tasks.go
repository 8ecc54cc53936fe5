package repository

import (
	"context"

	"todo-service/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	// FindByID loads the task with the username owning its list
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	// FindByListIDs returns the tasks of the given lists in insertion order
	FindByListIDs(ctx context.Context, listIDs []int64) ([]models.Task, error)
	// Update persists name, description, completion time and active flag
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id int64) error
}

var taskColumns = []string{
	"t.id AS id",
	"t.name AS name",
	"t.description AS description",
	"t.list_id AS list_id",
	"t.created_at AS created_at",
	"t.completed_at AS completed_at",
	"t.active AS active",
	"u.username AS owner_username",
}

type taskRepo struct {
	db sqlx.ExtContext
	sb sq.StatementBuilderType
}

func (r *taskRepo) selectTasks() sq.SelectBuilder {
	return r.sb.Select(taskColumns...).
		From("tasks t").
		Join("todo_lists l ON l.id = t.list_id").
		Join("users u ON u.id = l.user_id")
}

func (r *taskRepo) Create(ctx context.Context, t *models.Task) error {
	query, args, err := r.sb.Insert("tasks").
		Columns("name", "description", "list_id", "created_at", "completed_at", "active").
		Values(t.Name, t.Description, t.ListID, t.CreatedAt, t.CompletedAt, t.Active).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return wrapError(err, "create", "tasks")
	}
	return nil
}

func (r *taskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := r.selectTasks().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var t models.Task
	if err := sqlx.GetContext(ctx, r.db, &t, query, args...); err != nil {
		return nil, wrapError(err, "find", "tasks")
	}
	return &t, nil
}

func (r *taskRepo) FindByListIDs(ctx context.Context, listIDs []int64) ([]models.Task, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}

	query, args, err := r.selectTasks().
		Where(sq.Eq{"t.list_id": listIDs}).
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := sqlx.SelectContext(ctx, r.db, &tasks, query, args...); err != nil {
		return nil, wrapError(err, "find_by_list", "tasks")
	}
	return tasks, nil
}

func (r *taskRepo) Update(ctx context.Context, t *models.Task) error {
	query, args, err := r.sb.Update("tasks").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("completed_at", t.CompletedAt).
		Set("active", t.Active).
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "update", "tasks")
	}
	return checkRowsAffected(res, "update", "tasks")
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "delete", "tasks")
	}
	return checkRowsAffected(res, "delete", "tasks")
}
