package service

import (
	"context"
	"log/slog"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/repository"
)

// BreedService keeps the local breed lookup table in sync with the
// catalog's breed list.
type BreedService struct {
	breeds  repository.BreedRepository
	catalog Catalog
	logger  *slog.Logger
}

func NewBreedService(breeds repository.BreedRepository, catalog Catalog, logger *slog.Logger) *BreedService {
	return &BreedService{breeds: breeds, catalog: catalog, logger: logger}
}

// List returns the local lookup table.
func (s *BreedService) List(ctx context.Context) (map[int64]string, error) {
	return s.breeds.List(ctx)
}

// Sync fetches the catalog's dog breeds and upserts them locally, ids
// assigned by list position starting at 1. Admin only. Returns how many
// breeds were written.
func (s *BreedService) Sync(ctx context.Context, identity auth.Identity) (int, error) {
	if !identity.IsAdmin {
		return 0, apperror.Forbidden("breed sync is admin only")
	}

	names, err := s.catalog.ListBreeds(ctx)
	if err != nil {
		return 0, err
	}
	for i, name := range names {
		if err := s.breeds.Upsert(ctx, int64(i)+1, name); err != nil {
			return i, err
		}
	}
	s.logger.Info("breed table synced", "count", len(names), "by", identity.Username)
	return len(names), nil
}
