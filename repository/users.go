package repository

import (
	"context"

	"todo-service/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *models.User) error
	// Delete removes the user with every list and task it owns. Callers
	// should run it inside a transaction.
	Delete(ctx context.Context, id string) error
}

var userColumns = []string{"id", "username", "password", "email", "created_at", "updated_at"}

type userRepo struct {
	db sqlx.ExtContext
	sb sq.StatementBuilderType
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	query, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Username, u.Password, u.Email, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapError(err, "create", "users")
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, args...); err != nil {
		return nil, wrapError(err, "find", "users")
	}
	return &u, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, args...); err != nil {
		return false, wrapError(err, "exists", "users")
	}
	return n > 0, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	query, args, err := r.sb.Update("users").
		Set("username", u.Username).
		Set("password", u.Password).
		Set("email", u.Email).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "update", "users")
	}
	return checkRowsAffected(res, "update", "users")
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	tasks, args, err := r.sb.Delete("tasks").
		Where(sq.Expr("list_id IN (SELECT id FROM todo_lists WHERE user_id = ?)", id)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, tasks, args...); err != nil {
		return wrapError(err, "delete", "tasks")
	}

	lists, args, err := r.sb.Delete("todo_lists").Where(sq.Eq{"user_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, lists, args...); err != nil {
		return wrapError(err, "delete", "todo_lists")
	}

	users, args, err := r.sb.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, users, args...)
	if err != nil {
		return wrapError(err, "delete", "users")
	}
	return checkRowsAffected(res, "delete", "users")
}
