package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// AdopterStore implements repository.AdopterRepository.
type AdopterStore struct {
	db *DB
}

func NewAdopterStore(db *DB) *AdopterStore {
	return &AdopterStore{db: db}
}

// compile-time check that *AdopterStore implements the interface
var _ repository.AdopterRepository = (*AdopterStore)(nil)

// adopterColumns is every column except the password hash, in scan order.
const adopterColumns = `id, username, email, picture, description,
	private_outdoors, num_of_dogs, preferred_gender, preferred_age, is_admin`

// adopterAliases maps external field names to columns for partial updates.
var adopterAliases = map[string]string{
	"privateOutdoors": "private_outdoors",
	"numOfDogs":       "num_of_dogs",
	"preferredGender": "preferred_gender",
	"preferredAge":    "preferred_age",
	"isAdmin":         "is_admin",
}

func scanAdopter(row interface{ Scan(...any) error }) (*model.Adopter, error) {
	var a model.Adopter
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.Picture,
		&a.Description,
		&a.PrivateOutdoors,
		&a.NumOfDogs,
		&a.PreferredGender,
		&a.PreferredAge,
		&a.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new adopter and fills in the generated id. Same
// duplicate-username contract as the shelter store: explicit pre-check,
// UNIQUE index as the secondary guard.
func (st *AdopterStore) Create(ctx context.Context, a *model.Adopter) error {
	var existing string
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT username FROM adopters WHERE username = ?`, a.Username,
	).Scan(&existing)
	if err == nil {
		return apperror.Duplicate("adopter username", a.Username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: checking adopter username %s: %w", a.Username, err)
	}

	if a.Picture == "" {
		a.Picture = model.DefaultAdopterPicture
	}

	row, err := scanAdopter(st.db.conn.QueryRowContext(ctx,
		`INSERT INTO adopters
			(username, password, email, picture, description,
			 private_outdoors, num_of_dogs, preferred_gender, preferred_age, is_admin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+adopterColumns,
		a.Username,
		a.PasswordHash,
		a.Email,
		a.Picture,
		a.Description,
		a.PrivateOutdoors,
		a.NumOfDogs,
		a.PreferredGender,
		a.PreferredAge,
		a.IsAdmin,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("adopter username", a.Username)
		}
		return fmt.Errorf("sqlite: creating adopter %s: %w", a.Username, err)
	}

	hash := a.PasswordHash
	*a = *row
	a.PasswordHash = hash
	return nil
}

// FindAll returns adopters matching the filter, ordered by username.
// Predicates in declaration order: username, email — both partial
// matches. No match is an empty slice.
func (st *AdopterStore) FindAll(ctx context.Context, f repository.AdopterFilter) ([]model.Adopter, error) {
	query := `SELECT ` + adopterColumns + ` FROM adopters`
	var predicates []string
	var args []any

	for _, p := range []struct{ column, value string }{
		{"username", f.Username},
		{"email", f.Email},
	} {
		if p.value != "" {
			predicates = append(predicates, p.column+" LIKE ?")
			args = append(args, "%"+p.value+"%")
		}
	}

	query += whereClause(predicates) + " ORDER BY username"

	rows, err := st.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing adopters: %w", err)
	}
	defer rows.Close()

	adopters := []model.Adopter{}
	for rows.Next() {
		a, err := scanAdopter(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning adopter: %w", err)
		}
		adopters = append(adopters, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating adopters: %w", err)
	}

	return adopters, nil
}

// Get fetches one adopter by username and hydrates the favorited dog ids
// with a second query.
func (st *AdopterStore) Get(ctx context.Context, username string) (*model.Adopter, error) {
	a, err := scanAdopter(st.db.conn.QueryRowContext(ctx,
		`SELECT `+adopterColumns+` FROM adopters WHERE username = ?`, username,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("adopter", username)
		}
		return nil, fmt.Errorf("sqlite: getting adopter %s: %w", username, err)
	}

	rows, err := st.db.conn.QueryContext(ctx,
		`SELECT dog_id FROM fav_dogs WHERE adopter_id = ? ORDER BY id`, a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for %s: %w", username, err)
	}
	defer rows.Close()

	a.FavoriteDogIDs = []string{}
	for rows.Next() {
		var dogID string
		if err := rows.Scan(&dogID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite: %w", err)
		}
		a.FavoriteDogIDs = append(a.FavoriteDogIDs, dogID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorites: %w", err)
	}

	return a, nil
}

// GetCredentials fetches the row including the password hash, for the
// authentication path only.
func (st *AdopterStore) GetCredentials(ctx context.Context, username string) (*model.Adopter, error) {
	var a model.Adopter
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, email, is_admin
		 FROM adopters WHERE username = ?`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("adopter", username)
		}
		return nil, fmt.Errorf("sqlite: getting adopter credentials %s: %w", username, err)
	}
	return &a, nil
}

// Update applies a sparse patch and returns the updated row, keyed on the
// unique username. A missing username is detected from the update's own
// empty RETURNING result.
func (st *AdopterStore) Update(ctx context.Context, username string, patch *repository.Patch) (*model.Adopter, error) {
	setClause, args, err := buildPartialUpdate(patch, adopterAliases)
	if err != nil {
		return nil, err
	}
	args = append(args, username)

	a, err := scanAdopter(st.db.conn.QueryRowContext(ctx,
		`UPDATE adopters SET `+setClause+` WHERE username = ? RETURNING `+adopterColumns,
		args...,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("adopter", username)
		}
		if isUniqueViolation(err) {
			return nil, apperror.Duplicate("adopter username", username)
		}
		return nil, fmt.Errorf("sqlite: updating adopter %s: %w", username, err)
	}
	return a, nil
}

// UpdatePassword replaces the stored hash for one adopter.
func (st *AdopterStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := st.db.conn.ExecContext(ctx,
		`UPDATE adopters SET password = ? WHERE id = ?`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating adopter password %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating adopter password %d: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("adopter", strconv.FormatInt(id, 10))
	}
	return nil
}

// Delete removes the adopter row; the ledger rows go with it (foreign
// key cascade).
func (st *AdopterStore) Delete(ctx context.Context, username string) error {
	res, err := st.db.conn.ExecContext(ctx, `DELETE FROM adopters WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("sqlite: deleting adopter %s: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting adopter %s: %w", username, err)
	}
	if n == 0 {
		return apperror.NotFound("adopter", username)
	}
	return nil
}
