package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// AuthService handles registration and login for both account kinds,
// issuing a JWT on success.
type AuthService struct {
	shelters  repository.ShelterRepository
	adopters  repository.AdopterRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	shelters repository.ShelterRepository,
	adopters repository.AdopterRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		shelters:  shelters,
		adopters:  adopters,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterShelter hashes the password, creates the shelter and returns
// a token for the new account. A taken username is ErrDuplicate.
func (s *AuthService) RegisterShelter(ctx context.Context, shelter *model.Shelter, password string) (string, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", err
	}
	shelter.PasswordHash = hash

	if err := s.shelters.Create(ctx, shelter); err != nil {
		return "", err
	}
	s.logger.Info("shelter registered", "username", shelter.Username)

	return s.tokens.Generate(auth.Identity{
		Username: shelter.Username,
		Kind:     auth.KindShelter,
		IsAdmin:  shelter.IsAdmin,
	})
}

// RegisterAdopter is RegisterShelter for the adopter account kind.
func (s *AuthService) RegisterAdopter(ctx context.Context, adopter *model.Adopter, password string) (string, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", err
	}
	adopter.PasswordHash = hash

	if err := s.adopters.Create(ctx, adopter); err != nil {
		return "", err
	}
	s.logger.Info("adopter registered", "username", adopter.Username)

	return s.tokens.Generate(auth.Identity{
		Username: adopter.Username,
		Kind:     auth.KindAdopter,
		IsAdmin:  adopter.IsAdmin,
	})
}

// LoginShelter authenticates a shelter and returns a token plus the
// public profile. Unknown username and wrong password collapse into the
// same ErrUnauthorized so responses can't enumerate usernames.
func (s *AuthService) LoginShelter(ctx context.Context, username, password string) (string, *model.Shelter, error) {
	shelter, err := s.shelters.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", nil, apperror.Unauthorized()
		}
		return "", nil, err
	}
	if err := s.passwords.Verify(shelter.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return "", nil, apperror.Unauthorized()
		}
		return "", nil, fmt.Errorf("service: verifying shelter password: %w", err)
	}
	shelter.PasswordHash = ""

	token, err := s.tokens.Generate(auth.Identity{
		Username: shelter.Username,
		Kind:     auth.KindShelter,
		IsAdmin:  shelter.IsAdmin,
	})
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("shelter logged in", "username", username)
	return token, shelter, nil
}

// LoginAdopter is LoginShelter for the adopter account kind.
func (s *AuthService) LoginAdopter(ctx context.Context, username, password string) (string, *model.Adopter, error) {
	adopter, err := s.adopters.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", nil, apperror.Unauthorized()
		}
		return "", nil, err
	}
	if err := s.passwords.Verify(adopter.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return "", nil, apperror.Unauthorized()
		}
		return "", nil, fmt.Errorf("service: verifying adopter password: %w", err)
	}
	adopter.PasswordHash = ""

	token, err := s.tokens.Generate(auth.Identity{
		Username: adopter.Username,
		Kind:     auth.KindAdopter,
		IsAdmin:  adopter.IsAdmin,
	})
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("adopter logged in", "username", username)
	return token, adopter, nil
}
