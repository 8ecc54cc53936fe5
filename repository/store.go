package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Repositories groups the persistence ports bound to one connection or
// transaction.
type Repositories struct {
	Users UserRepository
	Lists ToDoListRepository
	Tasks TaskRepository
}

// Store owns the connection pool and hands out repositories
type Store struct {
	Repositories
	db *sqlx.DB
	tm *TransactionManager
}

// NewStore binds repositories to db. Placeholders follow the driver
// ($1 for postgres, ? otherwise).
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Repositories: newRepositories(db, builderFor(db.DriverName())),
		db:           db,
		tm:           NewTransactionManager(db),
	}
}

// WithTransaction runs fn with repositories bound to a single transaction
func (s *Store) WithTransaction(ctx context.Context, fn func(Repositories) error) error {
	return s.tm.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return fn(newRepositories(tx, builderFor(tx.DriverName())))
	})
}

// DB exposes the underlying pool (health checks, migrations)
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func newRepositories(db sqlx.ExtContext, sb sq.StatementBuilderType) Repositories {
	tasks := &taskRepo{db: db, sb: sb}
	return Repositories{
		Users: &userRepo{db: db, sb: sb},
		Lists: &toDoListRepo{db: db, sb: sb, tasks: tasks},
		Tasks: tasks,
	}
}

func builderFor(driver string) sq.StatementBuilderType {
	switch driver {
	case "postgres", "pgx":
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
}
