// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/mlbv/internal/shared"
)

// Open opens the database at path and applies pending migrations, returning the versions applied.
func Open(path string) (*sql.DB, []int, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	applied, err := shared.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, applied, nil
}

// affected returns notFound when a write touched no rows.
func affected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
