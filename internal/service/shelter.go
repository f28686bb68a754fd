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

// ShelterService handles shelter business logic: merged list/get across
// the local store and the remote catalog, and same-user-or-admin
// authorization on mutations.
type ShelterService struct {
	shelters  repository.ShelterRepository
	catalog   Catalog
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewShelterService(
	shelters repository.ShelterRepository,
	catalog Catalog,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *ShelterService {
	return &ShelterService{
		shelters:  shelters,
		catalog:   catalog,
		passwords: passwords,
		logger:    logger,
	}
}

// List returns local shelters followed by catalog organizations matching
// the same filter.
func (s *ShelterService) List(ctx context.Context, f repository.ShelterFilter) ([]model.Shelter, error) {
	local, err := s.shelters.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	remote, err := s.catalog.ListShelters(ctx, f)
	if err != nil {
		return nil, err
	}
	return MergeLists(local, remote), nil
}

// Get resolves one raw id against both sources, local first. Absent in
// both is ErrNotFound.
func (s *ShelterService) Get(ctx context.Context, rawID string) ([]model.Shelter, error) {
	var local *model.Shelter
	if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
		shelter, err := s.shelters.Get(ctx, id)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		local = shelter
	}

	remote, err := s.catalog.GetShelter(ctx, rawID)
	if err != nil {
		return nil, err
	}

	merged := MergeOne(local, remote)
	if len(merged) == 0 {
		return nil, apperror.NotFound("shelter", rawID)
	}
	return merged, nil
}

// GetByUsername fetches a local shelter profile with its dogs.
func (s *ShelterService) GetByUsername(ctx context.Context, username string) (*model.Shelter, error) {
	return s.shelters.GetByUsername(ctx, username)
}

// Update patches a shelter's profile. Only the shelter itself or an
// admin may update.
func (s *ShelterService) Update(ctx context.Context, identity auth.Identity, username string, patch *repository.Patch) (*model.Shelter, error) {
	if !identity.CanActFor(auth.KindShelter, username) {
		return nil, apperror.Forbidden("cannot modify another shelter")
	}
	shelter, err := s.shelters.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	id, _ := shelter.ID.Local()
	return s.shelters.Update(ctx, id, patch)
}

// UpdatePassword rehashes and stores a new password.
func (s *ShelterService) UpdatePassword(ctx context.Context, identity auth.Identity, username, newPassword string) error {
	if !identity.CanActFor(auth.KindShelter, username) {
		return apperror.Forbidden("cannot modify another shelter")
	}
	shelter, err := s.shelters.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}
	id, _ := shelter.ID.Local()
	if err := s.shelters.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info("shelter password updated", "username", username)
	return nil
}

// Delete removes a shelter and, through the store's cascade, its dogs.
func (s *ShelterService) Delete(ctx context.Context, identity auth.Identity, username string) error {
	if !identity.CanActFor(auth.KindShelter, username) {
		return apperror.Forbidden("cannot delete another shelter")
	}
	shelter, err := s.shelters.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	id, _ := shelter.ID.Local()
	if err := s.shelters.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("shelter deleted", "username", username, "by", identity.Username)
	return nil
}
