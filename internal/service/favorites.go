package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// FavoritesService is the adopter-to-dog favorites ledger. Dog ids in
// the ledger span both id spaces, so resolving them fans out to the
// local store and the catalog; ids that resolve nowhere are dropped
// rather than failing the listing.
type FavoritesService struct {
	adopters  repository.AdopterRepository
	favorites repository.FavoriteRepository
	dogs      repository.DogRepository
	catalog   Catalog
	logger    *slog.Logger
}

func NewFavoritesService(
	adopters repository.AdopterRepository,
	favorites repository.FavoriteRepository,
	dogs repository.DogRepository,
	catalog Catalog,
	logger *slog.Logger,
) *FavoritesService {
	return &FavoritesService{
		adopters:  adopters,
		favorites: favorites,
		dogs:      dogs,
		catalog:   catalog,
		logger:    logger,
	}
}

// Favorite records one dog for one adopter. Favoriting twice is
// ErrDuplicate; an unknown adopter is ErrNotFound.
func (s *FavoritesService) Favorite(ctx context.Context, adopterUsername, dogID string) (*model.FavoriteEntry, error) {
	adopter, err := s.adopters.Get(ctx, adopterUsername)
	if err != nil {
		return nil, err
	}
	entry, err := s.favorites.Add(ctx, adopter.ID, dogID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("dog favorited", "adopter", adopterUsername, "dog", dogID)
	return entry, nil
}

// Unfavorite removes one ledger entry. A pair that was never favorited
// is ErrNotFound.
func (s *FavoritesService) Unfavorite(ctx context.Context, adopterUsername, dogID string) error {
	adopter, err := s.adopters.Get(ctx, adopterUsername)
	if err != nil {
		return err
	}
	if err := s.favorites.Remove(ctx, adopter.ID, dogID); err != nil {
		return err
	}
	s.logger.Info("dog unfavorited", "adopter", adopterUsername, "dog", dogID)
	return nil
}

// ListDogIDs returns the adopter's favorited dog ids in add order.
func (s *FavoritesService) ListDogIDs(ctx context.Context, adopterUsername string) ([]string, error) {
	adopter, err := s.adopters.Get(ctx, adopterUsername)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListDogIDs(ctx, adopter.ID)
}

// ResolveFavorites turns the adopter's favorited ids into full dog
// records, checking the local store first and then the catalog per id.
// Ids absent in both (the dog is gone everywhere) are silently dropped.
func (s *FavoritesService) ResolveFavorites(ctx context.Context, adopterUsername string) ([]model.Dog, error) {
	ids, err := s.ListDogIDs(ctx, adopterUsername)
	if err != nil {
		return nil, err
	}

	dogs := []model.Dog{}
	for _, rawID := range ids {
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

		dogs = append(dogs, MergeOne(local, remote)...)
	}
	return dogs, nil
}
