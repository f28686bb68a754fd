package service

import (
	"context"
	"log/slog"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// AdopterService handles adopter business logic. Adopters exist only
// locally; there is no catalog side to merge.
type AdopterService struct {
	adopters  repository.AdopterRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAdopterService(
	adopters repository.AdopterRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AdopterService {
	return &AdopterService{
		adopters:  adopters,
		passwords: passwords,
		logger:    logger,
	}
}

func (s *AdopterService) List(ctx context.Context, f repository.AdopterFilter) ([]model.Adopter, error) {
	return s.adopters.FindAll(ctx, f)
}

// Get fetches one adopter profile with favorited dog ids.
func (s *AdopterService) Get(ctx context.Context, username string) (*model.Adopter, error) {
	return s.adopters.Get(ctx, username)
}

// Update patches an adopter's profile. Only the adopter or an admin.
func (s *AdopterService) Update(ctx context.Context, identity auth.Identity, username string, patch *repository.Patch) (*model.Adopter, error) {
	if !identity.CanActFor(auth.KindAdopter, username) {
		return nil, apperror.Forbidden("cannot modify another adopter")
	}
	return s.adopters.Update(ctx, username, patch)
}

// UpdatePassword rehashes and stores a new password.
func (s *AdopterService) UpdatePassword(ctx context.Context, identity auth.Identity, username, newPassword string) error {
	if !identity.CanActFor(auth.KindAdopter, username) {
		return apperror.Forbidden("cannot modify another adopter")
	}
	adopter, err := s.adopters.Get(ctx, username)
	if err != nil {
		return err
	}
	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.adopters.UpdatePassword(ctx, adopter.ID, hash); err != nil {
		return err
	}
	s.logger.Info("adopter password updated", "username", username)
	return nil
}

func (s *AdopterService) Delete(ctx context.Context, identity auth.Identity, username string) error {
	if !identity.CanActFor(auth.KindAdopter, username) {
		return apperror.Forbidden("cannot delete another adopter")
	}
	if err := s.adopters.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info("adopter deleted", "username", username, "by", identity.Username)
	return nil
}
