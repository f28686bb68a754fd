package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// FavoriteStore implements repository.FavoriteRepository. The ledger
// stores dog ids as text so local and catalog dogs share one table, and
// carries no foreign key to dogs so a deleted dog never blocks on its
// favorites.
type FavoriteStore struct {
	db *DB
}

func NewFavoriteStore(db *DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// compile-time check that *FavoriteStore implements the interface
var _ repository.FavoriteRepository = (*FavoriteStore)(nil)

// Add records one (adopter, dog) pair. Favoriting the same dog twice is
// apperror.ErrDuplicate, pre-checked and backed by the UNIQUE index.
func (st *FavoriteStore) Add(ctx context.Context, adopterID int64, dogID string) (*model.FavoriteEntry, error) {
	var existing string
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT dog_id FROM fav_dogs WHERE adopter_id = ? AND dog_id = ?`,
		adopterID, dogID,
	).Scan(&existing)
	if err == nil {
		return nil, apperror.Duplicate("favorite", dogID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: checking favorite %s: %w", dogID, err)
	}

	var entry model.FavoriteEntry
	err = st.db.conn.QueryRowContext(ctx,
		`INSERT INTO fav_dogs (adopter_id, dog_id)
		 VALUES (?, ?)
		 RETURNING adopter_id, dog_id`,
		adopterID, dogID,
	).Scan(&entry.AdopterID, &entry.DogID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Duplicate("favorite", dogID)
		}
		return nil, fmt.Errorf("sqlite: adding favorite %s: %w", dogID, err)
	}
	return &entry, nil
}

// Remove deletes one (adopter, dog) pair. Unfavoriting a dog that was
// never favorited is apperror.ErrNotFound.
func (st *FavoriteStore) Remove(ctx context.Context, adopterID int64, dogID string) error {
	res, err := st.db.conn.ExecContext(ctx,
		`DELETE FROM fav_dogs WHERE adopter_id = ? AND dog_id = ?`,
		adopterID, dogID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing favorite %s: %w", dogID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: removing favorite %s: %w", dogID, err)
	}
	if n == 0 {
		return apperror.NotFound("favorite", dogID)
	}
	return nil
}

// ListDogIDs returns an adopter's favorited dog ids in the order they
// were added. No favorites is an empty slice.
func (st *FavoriteStore) ListDogIDs(ctx context.Context, adopterID int64) ([]string, error) {
	rows, err := st.db.conn.QueryContext(ctx,
		`SELECT dog_id FROM fav_dogs WHERE adopter_id = ? ORDER BY id`, adopterID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for adopter %d: %w", adopterID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var dogID string
		if err := rows.Scan(&dogID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite: %w", err)
		}
		ids = append(ids, dogID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorites: %w", err)
	}

	return ids, nil
}
