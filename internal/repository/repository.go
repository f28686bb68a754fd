// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the concrete implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/dogmatch/internal/model"
)

// ShelterFilter holds the optional search filters for shelter listings.
// All text filters are case-insensitive partial matches. Predicates are
// applied in field declaration order.
type ShelterFilter struct {
	Name     string
	City     string
	State    string
	Postcode string
}

// AdopterFilter holds the optional search filters for adopter listings.
type AdopterFilter struct {
	Username string
	Email    string
}

// DogFilter holds the optional search filters for dog listings. Name,
// gender and age are partial matches; breed and the compatibility flags
// are exact. A TriUnknown flag means "filter absent" — rows stored as
// unknown never match an exact yes/no filter.
type DogFilter struct {
	Name      string
	BreedID   int64
	Gender    string
	Age       string
	GoodWKids model.TriState
	GoodWDogs model.TriState
	GoodWCats model.TriState
}

type ShelterRepository interface {
	// Create inserts the shelter and fills in the generated id. The
	// caller provides PasswordHash already hashed. Returns
	// apperror.ErrDuplicate when the username is taken.
	Create(ctx context.Context, s *model.Shelter) error

	// FindAll returns matching shelters ordered by name. An empty result
	// is an empty slice, never an error.
	FindAll(ctx context.Context, f ShelterFilter) ([]model.Shelter, error)

	// Get fetches one shelter by local id, hydrating its owned dogs.
	Get(ctx context.Context, id int64) (*model.Shelter, error)

	// GetByUsername is Get keyed on the unique username.
	GetByUsername(ctx context.Context, username string) (*model.Shelter, error)

	// GetCredentials fetches id, username, password hash and admin flag
	// for authentication. Returns apperror.ErrNotFound when the username
	// is unknown.
	GetCredentials(ctx context.Context, username string) (*model.Shelter, error)

	// Update applies a sparse patch and returns the updated row. Returns
	// apperror.ErrNotFound when the id does not exist (detected from the
	// update itself, not a separate probe).
	Update(ctx context.Context, id int64, patch *Patch) (*model.Shelter, error)

	// UpdatePassword replaces the stored hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// Delete removes the row; apperror.ErrNotFound if it did not exist.
	Delete(ctx context.Context, id int64) error
}

type AdopterRepository interface {
	Create(ctx context.Context, a *model.Adopter) error
	FindAll(ctx context.Context, f AdopterFilter) ([]model.Adopter, error)

	// Get fetches one adopter by username, hydrating favorite dog ids.
	Get(ctx context.Context, username string) (*model.Adopter, error)

	GetCredentials(ctx context.Context, username string) (*model.Adopter, error)
	Update(ctx context.Context, username string, patch *Patch) (*model.Adopter, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, username string) error
}

type DogRepository interface {
	Create(ctx context.Context, d *model.Dog) error
	FindAll(ctx context.Context, f DogFilter) ([]model.Dog, error)

	// Get fetches one dog by local id, hydrating the owning shelter.
	// Returns apperror.ErrNotFound when no row matches.
	Get(ctx context.Context, id int64) (*model.Dog, error)

	Update(ctx context.Context, id int64, patch *Patch) (*model.Dog, error)
	Delete(ctx context.Context, id int64) error
}

type FavoriteRepository interface {
	// Add inserts a ledger entry. Returns apperror.ErrDuplicate when the
	// (adopter, dog) pair already exists.
	Add(ctx context.Context, adopterID int64, dogID string) (*model.FavoriteEntry, error)

	// Remove deletes the entry; apperror.ErrNotFound when no relation
	// existed.
	Remove(ctx context.Context, adopterID int64, dogID string) error

	// ListDogIDs returns the adopter's favorited dog ids in insertion
	// order. Dangling ids (dog since deleted) are returned as-is; the
	// caller resolves and drops them.
	ListDogIDs(ctx context.Context, adopterID int64) ([]string, error)
}

type BreedRepository interface {
	// Resolve maps a local breed id to the breed name. Returns
	// apperror.ErrNotFound for an unknown id.
	Resolve(ctx context.Context, id int64) (string, error)

	// Upsert inserts or renames a breed row.
	Upsert(ctx context.Context, id int64, name string) error

	// List returns all breeds ordered by id.
	List(ctx context.Context) (map[int64]string, error)
}
