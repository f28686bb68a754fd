package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// DogService handles adoptable-dog business logic: merged list/get
// across the local store and the remote catalog, and owner-or-admin
// authorization on mutations.
type DogService struct {
	dogs     repository.DogRepository
	shelters repository.ShelterRepository
	catalog  Catalog
	logger   *slog.Logger
}

func NewDogService(
	dogs repository.DogRepository,
	shelters repository.ShelterRepository,
	catalog Catalog,
	logger *slog.Logger,
) *DogService {
	return &DogService{
		dogs:     dogs,
		shelters: shelters,
		catalog:  catalog,
		logger:   logger,
	}
}

// List returns local dogs followed by catalog dogs matching the same
// filter. A catalog failure fails the whole list; missing-in-one-source
// is normal and just shrinks the result.
func (s *DogService) List(ctx context.Context, f repository.DogFilter) ([]model.Dog, error) {
	local, err := s.dogs.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	remote, err := s.catalog.ListDogs(ctx, f)
	if err != nil {
		return nil, err
	}
	return MergeLists(local, remote), nil
}

// Get resolves one raw id against both sources. A numeric id is looked
// up locally; every id is tried against the catalog, since remote ids
// are opaque strings that may collide with a local literal. Absent in
// both is ErrNotFound.
func (s *DogService) Get(ctx context.Context, rawID string) ([]model.Dog, error) {
	var local *model.Dog
	if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
		dog, err := s.dogs.Get(ctx, id)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		local = dog
	}

	remote, err := s.catalog.GetDog(ctx, rawID)
	if err != nil {
		return nil, err
	}

	merged := MergeOne(local, remote)
	if len(merged) == 0 {
		return nil, apperror.NotFound("dog", rawID)
	}
	return merged, nil
}

// Create adds a dog to the caller's shelter. Only the owning shelter or
// an admin may create.
func (s *DogService) Create(ctx context.Context, identity auth.Identity, dog *model.Dog) error {
	if err := s.authorizeForShelter(ctx, identity, dog.ShelterID); err != nil {
		return err
	}
	if err := s.dogs.Create(ctx, dog); err != nil {
		return err
	}
	s.logger.Info("dog created", "id", dog.ID.String(), "name", dog.Name, "by", identity.Username)
	return nil
}

// Update patches a local dog after checking the caller owns it (or is
// an admin).
func (s *DogService) Update(ctx context.Context, identity auth.Identity, id int64, patch *repository.Patch) (*model.Dog, error) {
	dog, err := s.dogs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeForShelter(ctx, identity, dog.ShelterID); err != nil {
		return nil, err
	}
	return s.dogs.Update(ctx, id, patch)
}

// Delete removes a local dog, same authorization as Update. Ledger
// entries pointing at the dog are left to be filtered lazily.
func (s *DogService) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	dog, err := s.dogs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeForShelter(ctx, identity, dog.ShelterID); err != nil {
		return err
	}
	if err := s.dogs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("dog deleted", "id", id, "by", identity.Username)
	return nil
}

// authorizeForShelter permits admins, and shelters acting on their own
// listings. The caller's shelter row is looked up to compare ids.
func (s *DogService) authorizeForShelter(ctx context.Context, identity auth.Identity, shelterID model.EntityID) error {
	if identity.IsAdmin {
		return nil
	}
	if identity.Kind != auth.KindShelter {
		return apperror.Forbidden("only shelters manage dog listings")
	}
	shelter, err := s.shelters.GetByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.Forbidden("only shelters manage dog listings")
		}
		return err
	}
	if shelter.ID != shelterID {
		return apperror.Forbidden("dog belongs to another shelter")
	}
	return nil
}
