package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/repository"
)

// BreedStore implements repository.BreedRepository over the breeds
// lookup table. Ids are assigned by the catalog sync, not autoincrement.
type BreedStore struct {
	db *DB
}

func NewBreedStore(db *DB) *BreedStore {
	return &BreedStore{db: db}
}

// compile-time check that *BreedStore implements the interface
var _ repository.BreedRepository = (*BreedStore)(nil)

// Resolve returns the breed name for an id.
func (st *BreedStore) Resolve(ctx context.Context, id int64) (string, error) {
	var name string
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT breed FROM breeds WHERE id = ?`, id,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperror.NotFound("breed", strconv.FormatInt(id, 10))
		}
		return "", fmt.Errorf("sqlite: resolving breed %d: %w", id, err)
	}
	return name, nil
}

// Upsert inserts or renames one breed row.
func (st *BreedStore) Upsert(ctx context.Context, id int64, name string) error {
	_, err := st.db.conn.ExecContext(ctx,
		`INSERT INTO breeds (id, breed) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET breed = excluded.breed`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting breed %d: %w", id, err)
	}
	return nil
}

// List returns the whole lookup table as an id-to-name map.
func (st *BreedStore) List(ctx context.Context) (map[int64]string, error) {
	rows, err := st.db.conn.QueryContext(ctx, `SELECT id, breed FROM breeds`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing breeds: %w", err)
	}
	defer rows.Close()

	breeds := map[int64]string{}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning breed: %w", err)
		}
		breeds[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating breeds: %w", err)
	}

	return breeds, nil
}
