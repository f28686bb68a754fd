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

// ShelterStore implements repository.ShelterRepository.
type ShelterStore struct {
	db *DB
}

func NewShelterStore(db *DB) *ShelterStore {
	return &ShelterStore{db: db}
}

// compile-time check that *ShelterStore implements the interface
var _ repository.ShelterRepository = (*ShelterStore)(nil)

// shelterColumns is every column except the password hash, in scan order.
const shelterColumns = `id, username, name, address, city, state, postcode,
	phone_number, email, logo, description, is_admin`

// shelterAliases maps external field names to columns for partial updates.
var shelterAliases = map[string]string{
	"phoneNumber": "phone_number",
	"isAdmin":     "is_admin",
}

func scanShelter(row interface{ Scan(...any) error }) (*model.Shelter, error) {
	var s model.Shelter
	var id int64
	err := row.Scan(
		&id,
		&s.Username,
		&s.Name,
		&s.Address,
		&s.City,
		&s.State,
		&s.Postcode,
		&s.PhoneNumber,
		&s.Email,
		&s.Logo,
		&s.Description,
		&s.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	s.ID = model.LocalID(id)
	return &s, nil
}

// Create inserts a new shelter and fills in the generated id.
// The username is pre-checked for duplicates; the UNIQUE index catches the
// narrow race between check and insert, and both paths surface as
// apperror.ErrDuplicate.
func (st *ShelterStore) Create(ctx context.Context, s *model.Shelter) error {
	var existing string
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT username FROM shelters WHERE username = ?`, s.Username,
	).Scan(&existing)
	if err == nil {
		return apperror.Duplicate("shelter username", s.Username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: checking shelter username %s: %w", s.Username, err)
	}

	if s.Logo == "" {
		s.Logo = model.DefaultShelterLogo
	}

	row, err := scanShelter(st.db.conn.QueryRowContext(ctx,
		`INSERT INTO shelters
			(username, password, name, address, city, state, postcode,
			 phone_number, email, logo, description, is_admin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+shelterColumns,
		s.Username,
		s.PasswordHash,
		s.Name,
		s.Address,
		s.City,
		s.State,
		s.Postcode,
		s.PhoneNumber,
		s.Email,
		s.Logo,
		s.Description,
		s.IsAdmin,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("shelter username", s.Username)
		}
		return fmt.Errorf("sqlite: creating shelter %s: %w", s.Username, err)
	}

	hash := s.PasswordHash
	*s = *row
	s.PasswordHash = hash
	return nil
}

// FindAll returns shelters matching the filter, ordered by name.
// Each present filter contributes one predicate, ANDed in declaration
// order: name, city, state, postcode — all case-insensitive partial
// matches. No match is an empty slice, not an error.
func (st *ShelterStore) FindAll(ctx context.Context, f repository.ShelterFilter) ([]model.Shelter, error) {
	query := `SELECT ` + shelterColumns + ` FROM shelters`
	var predicates []string
	var args []any

	for _, p := range []struct{ column, value string }{
		{"name", f.Name},
		{"city", f.City},
		{"state", f.State},
		{"postcode", f.Postcode},
	} {
		if p.value != "" {
			predicates = append(predicates, p.column+" LIKE ?")
			args = append(args, "%"+p.value+"%")
		}
	}

	query += whereClause(predicates) + " ORDER BY name"

	rows, err := st.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shelters: %w", err)
	}
	defer rows.Close()

	shelters := []model.Shelter{}
	for rows.Next() {
		s, err := scanShelter(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning shelter: %w", err)
		}
		shelters = append(shelters, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating shelters: %w", err)
	}

	return shelters, nil
}

// Get fetches one shelter by local id and hydrates its adoptable dogs
// with a second query.
func (st *ShelterStore) Get(ctx context.Context, id int64) (*model.Shelter, error) {
	s, err := scanShelter(st.db.conn.QueryRowContext(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("shelter", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting shelter %d: %w", id, err)
	}

	if err := st.hydrateShelterDogs(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByUsername is Get keyed on the unique username.
func (st *ShelterStore) GetByUsername(ctx context.Context, username string) (*model.Shelter, error) {
	s, err := scanShelter(st.db.conn.QueryRowContext(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE username = ?`, username,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("shelter", username)
		}
		return nil, fmt.Errorf("sqlite: getting shelter %s: %w", username, err)
	}

	if err := st.hydrateShelterDogs(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (st *ShelterStore) hydrateShelterDogs(ctx context.Context, s *model.Shelter) error {
	id, _ := s.ID.Local()
	rows, err := st.db.conn.QueryContext(ctx,
		`SELECT `+dogColumns+`
		 FROM adoptable_dogs d
		 JOIN breeds b ON b.id = d.breed_id
		 WHERE d.shelter_id = ?
		 ORDER BY d.name`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: listing dogs for shelter %d: %w", id, err)
	}
	defer rows.Close()

	s.AdoptableDogs = []model.Dog{}
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return fmt.Errorf("sqlite: scanning shelter dog: %w", err)
		}
		s.AdoptableDogs = append(s.AdoptableDogs, *d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating shelter dogs: %w", err)
	}
	return nil
}

// GetCredentials fetches the row including the password hash, for the
// authentication path only.
func (st *ShelterStore) GetCredentials(ctx context.Context, username string) (*model.Shelter, error) {
	var s model.Shelter
	var id int64
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, name, email, is_admin
		 FROM shelters WHERE username = ?`, username,
	).Scan(&id, &s.Username, &s.PasswordHash, &s.Name, &s.Email, &s.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("shelter", username)
		}
		return nil, fmt.Errorf("sqlite: getting shelter credentials %s: %w", username, err)
	}
	s.ID = model.LocalID(id)
	return &s, nil
}

// Update applies a sparse patch and returns the updated row. A missing id
// is detected from the update's own empty RETURNING result, not a
// separate existence probe.
func (st *ShelterStore) Update(ctx context.Context, id int64, patch *repository.Patch) (*model.Shelter, error) {
	setClause, args, err := buildPartialUpdate(patch, shelterAliases)
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	s, err := scanShelter(st.db.conn.QueryRowContext(ctx,
		`UPDATE shelters SET `+setClause+` WHERE id = ? RETURNING `+shelterColumns,
		args...,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("shelter", strconv.FormatInt(id, 10))
		}
		if isUniqueViolation(err) {
			return nil, apperror.Duplicate("shelter username", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: updating shelter %d: %w", id, err)
	}
	return s, nil
}

// UpdatePassword replaces the stored hash for one shelter.
func (st *ShelterStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := st.db.conn.ExecContext(ctx,
		`UPDATE shelters SET password = ? WHERE id = ?`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating shelter password %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating shelter password %d: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("shelter", strconv.FormatInt(id, 10))
	}
	return nil
}

// Delete removes the shelter row. Its dogs go with it (foreign key
// cascade); favorites pointing at those dogs are left dangling on
// purpose and filtered at list time.
func (st *ShelterStore) Delete(ctx context.Context, id int64) error {
	res, err := st.db.conn.ExecContext(ctx, `DELETE FROM shelters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting shelter %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting shelter %d: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("shelter", strconv.FormatInt(id, 10))
	}
	return nil
}

func whereClause(predicates []string) string {
	if len(predicates) == 0 {
		return ""
	}
	clause := " WHERE " + predicates[0]
	for _, p := range predicates[1:] {
		clause += " AND " + p
	}
	return clause
}
