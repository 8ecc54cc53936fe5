package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrForeignKey   = errors.New("foreign key violation")
)

// Error describes a failed repository operation
type Error struct {
	Op    string // Operation that failed
	Table string // Table involved
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError classifies driver errors for both SQLite and PostgreSQL
func wrapError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		return &Error{Op: op, Table: table, Err: ErrDuplicateKey}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return &Error{Op: op, Table: table, Err: ErrForeignKey}
	}

	return &Error{Op: op, Table: table, Err: err}
}

// checkRowsAffected turns an UPDATE/DELETE that touched nothing into ErrNotFound
func checkRowsAffected(res sql.Result, op, table string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapError(err, op, table)
	}
	if n == 0 {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}
	return nil
}
