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

// DogStore implements repository.DogRepository.
type DogStore struct {
	db *DB
}

func NewDogStore(db *DB) *DogStore {
	return &DogStore{db: db}
}

// compile-time check that *DogStore implements the interface
var _ repository.DogRepository = (*DogStore)(nil)

// dogColumns is the joined select list: dog row plus the breed name from
// the lookup table. Local reads always resolve the breed name; remote
// records carry it as a literal string already.
const dogColumns = `d.id, d.name, d.breed_id, b.breed, d.gender, d.age,
	d.picture, d.description, d.good_w_kids, d.good_w_dogs, d.good_w_cats,
	d.shelter_id`

// dogReturning is the un-joined column list used with RETURNING, where no
// join is available; the breed name is resolved afterwards.
const dogReturning = `id, name, breed_id, gender, age, picture, description,
	good_w_kids, good_w_dogs, good_w_cats, shelter_id`

// dogAliases maps external field names to columns for partial updates.
var dogAliases = map[string]string{
	"breedId":   "breed_id",
	"goodWKids": "good_w_kids",
	"goodWDogs": "good_w_dogs",
	"goodWCats": "good_w_cats",
}

// triToSQL maps the canonical tri-state onto a nullable boolean column.
func triToSQL(t model.TriState) any {
	value, known := t.Bool()
	if !known {
		return nil
	}
	return value
}

func triFromSQL(b sql.NullBool) model.TriState {
	if !b.Valid {
		return model.TriUnknown
	}
	return model.TriFromBool(b.Bool)
}

func scanDog(row interface{ Scan(...any) error }) (*model.Dog, error) {
	var d model.Dog
	var id, shelterID int64
	var kids, dogs, cats sql.NullBool
	err := row.Scan(
		&id,
		&d.Name,
		&d.BreedID,
		&d.Breed,
		&d.Gender,
		&d.Age,
		&d.Picture,
		&d.Description,
		&kids,
		&dogs,
		&cats,
		&shelterID,
	)
	if err != nil {
		return nil, err
	}
	d.ID = model.LocalID(id)
	d.ShelterID = model.LocalID(shelterID)
	d.GoodWKids = triFromSQL(kids)
	d.GoodWDogs = triFromSQL(dogs)
	d.GoodWCats = triFromSQL(cats)
	return &d, nil
}

// scanDogRow scans an un-joined dog row (RETURNING result); the breed
// name is filled in by the caller.
func scanDogRow(row interface{ Scan(...any) error }) (*model.Dog, error) {
	var d model.Dog
	var id, shelterID int64
	var kids, dogs, cats sql.NullBool
	err := row.Scan(
		&id,
		&d.Name,
		&d.BreedID,
		&d.Gender,
		&d.Age,
		&d.Picture,
		&d.Description,
		&kids,
		&dogs,
		&cats,
		&shelterID,
	)
	if err != nil {
		return nil, err
	}
	d.ID = model.LocalID(id)
	d.ShelterID = model.LocalID(shelterID)
	d.GoodWKids = triFromSQL(kids)
	d.GoodWDogs = triFromSQL(dogs)
	d.GoodWCats = triFromSQL(cats)
	return &d, nil
}

// Create inserts a new dog owned by a local shelter and fills in the
// generated id and resolved breed name. The picture defaults to the
// placeholder when absent.
func (st *DogStore) Create(ctx context.Context, d *model.Dog) error {
	if d.Picture == "" {
		d.Picture = model.DefaultDogPicture
	}
	shelterID, ok := d.ShelterID.Local()
	if !ok {
		return apperror.ValidationFailed("shelterId", "dog must be owned by a local shelter")
	}

	row, err := scanDogRow(st.db.conn.QueryRowContext(ctx,
		`INSERT INTO adoptable_dogs
			(name, breed_id, gender, age, picture, description,
			 good_w_kids, good_w_dogs, good_w_cats, shelter_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+dogReturning,
		d.Name,
		d.BreedID,
		d.Gender,
		d.Age,
		d.Picture,
		d.Description,
		triToSQL(d.GoodWKids),
		triToSQL(d.GoodWDogs),
		triToSQL(d.GoodWCats),
		shelterID,
	))
	if err != nil {
		return fmt.Errorf("sqlite: creating dog %s: %w", d.Name, err)
	}

	*d = *row
	if err := st.resolveBreedName(ctx, d); err != nil {
		return err
	}
	return nil
}

func (st *DogStore) resolveBreedName(ctx context.Context, d *model.Dog) error {
	err := st.db.conn.QueryRowContext(ctx,
		`SELECT breed FROM breeds WHERE id = ?`, d.BreedID,
	).Scan(&d.Breed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: resolving breed %d: %w", d.BreedID, err)
	}
	return nil
}

// FindAll returns dogs matching the filter, ordered by name. Predicates
// are ANDed in declaration order: name (partial), breed id (exact),
// gender and age (partial), then the three compatibility flags (exact —
// a row stored as unknown never matches). No match is an empty slice.
func (st *DogStore) FindAll(ctx context.Context, f repository.DogFilter) ([]model.Dog, error) {
	query := `SELECT ` + dogColumns + `
		FROM adoptable_dogs d
		JOIN breeds b ON b.id = d.breed_id`
	var predicates []string
	var args []any

	if f.Name != "" {
		predicates = append(predicates, "d.name LIKE ?")
		args = append(args, "%"+f.Name+"%")
	}
	if f.BreedID != 0 {
		predicates = append(predicates, "b.id = ?")
		args = append(args, f.BreedID)
	}
	if f.Gender != "" {
		predicates = append(predicates, "d.gender LIKE ?")
		args = append(args, "%"+f.Gender+"%")
	}
	if f.Age != "" {
		predicates = append(predicates, "d.age LIKE ?")
		args = append(args, "%"+f.Age+"%")
	}
	for _, p := range []struct {
		column string
		flag   model.TriState
	}{
		{"d.good_w_kids", f.GoodWKids},
		{"d.good_w_dogs", f.GoodWDogs},
		{"d.good_w_cats", f.GoodWCats},
	} {
		if value, known := p.flag.Bool(); known {
			predicates = append(predicates, p.column+" = ?")
			args = append(args, value)
		}
	}

	query += whereClause(predicates) + " ORDER BY d.name"

	rows, err := st.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing dogs: %w", err)
	}
	defer rows.Close()

	dogs := []model.Dog{}
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning dog: %w", err)
		}
		dogs = append(dogs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating dogs: %w", err)
	}

	return dogs, nil
}

// Get fetches one dog by local id and hydrates its owning shelter with a
// second query.
func (st *DogStore) Get(ctx context.Context, id int64) (*model.Dog, error) {
	d, err := scanDog(st.db.conn.QueryRowContext(ctx,
		`SELECT `+dogColumns+`
		 FROM adoptable_dogs d
		 JOIN breeds b ON b.id = d.breed_id
		 WHERE d.id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("dog", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting dog %d: %w", id, err)
	}

	shelterID, _ := d.ShelterID.Local()
	shelter, err := scanShelter(st.db.conn.QueryRowContext(ctx,
		`SELECT `+shelterColumns+` FROM shelters WHERE id = ?`, shelterID,
	))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sqlite: getting shelter for dog %d: %w", id, err)
		}
	} else {
		d.Shelter = shelter
	}

	return d, nil
}

// Update applies a sparse patch and returns the updated row. A missing id
// is detected from the update's own empty RETURNING result.
func (st *DogStore) Update(ctx context.Context, id int64, patch *repository.Patch) (*model.Dog, error) {
	setClause, args, err := buildPartialUpdate(patch, dogAliases)
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	d, err := scanDogRow(st.db.conn.QueryRowContext(ctx,
		`UPDATE adoptable_dogs SET `+setClause+` WHERE id = ? RETURNING `+dogReturning,
		args...,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("dog", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: updating dog %d: %w", id, err)
	}

	if err := st.resolveBreedName(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the dog row. Favorites pointing at it stay in the
// ledger and are dropped lazily when listed.
func (st *DogStore) Delete(ctx context.Context, id int64) error {
	res, err := st.db.conn.ExecContext(ctx, `DELETE FROM adoptable_dogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting dog %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting dog %d: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("dog", strconv.FormatInt(id, 10))
	}
	return nil
}
