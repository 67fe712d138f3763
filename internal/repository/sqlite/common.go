package sqlite

import (
	"context"
	"database/sql"

	"worktime-control/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("execute query", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}
