package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

func newAdopterServiceFixture(t *testing.T) (*AdopterService, *mockAdopterRepo) {
	t.Helper()
	adopters := newMockAdopterRepo()
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return NewAdopterService(adopters, passwords, testLogger()), adopters
}

func seedAdopter(t *testing.T, adopters *mockAdopterRepo, username string) *model.Adopter {
	t.Helper()
	adopter := &model.Adopter{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := adopters.Create(context.Background(), adopter); err != nil {
		t.Fatalf("seeding adopter %s: %v", username, err)
	}
	return adopter
}

func TestAdopterUpdate_Authorization(t *testing.T) {
	svc, adopters := newAdopterServiceFixture(t)
	ctx := context.Background()
	seedAdopter(t, adopters, "dogfan")

	patch := new(repository.Patch).Set("description", "Looking for a beagle")

	_, err := svc.Update(ctx, auth.Identity{Username: "catfan", Kind: auth.KindAdopter}, "dogfan", patch)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() as other user error = %v, want ErrForbidden", err)
	}

	// A shelter registered under the same username is a different
	// account; the matching name must not grant access.
	_, err = svc.Update(ctx, auth.Identity{Username: "dogfan", Kind: auth.KindShelter}, "dogfan", patch)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() as same-named shelter error = %v, want ErrForbidden", err)
	}

	if _, err := svc.Update(ctx, auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}, "dogfan", patch); err != nil {
		t.Fatalf("Update() as self error = %v", err)
	}

	// Admins may update anyone.
	if _, err := svc.Update(ctx, auth.Identity{Username: "root", IsAdmin: true}, "dogfan", patch); err != nil {
		t.Errorf("Update() as admin error = %v", err)
	}
}

func TestAdopterUpdatePassword(t *testing.T) {
	svc, adopters := newAdopterServiceFixture(t)
	ctx := context.Background()
	seedAdopter(t, adopters, "dogfan")

	identity := auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}
	if err := svc.UpdatePassword(ctx, identity, "dogfan", "new-pw"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	stored, err := adopters.GetCredentials(ctx, "dogfan")
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "new-pw" {
		t.Errorf("stored hash = %q, want a bcrypt hash", stored.PasswordHash)
	}
}

func TestAdopterDelete_Authorization(t *testing.T) {
	svc, adopters := newAdopterServiceFixture(t)
	ctx := context.Background()
	seedAdopter(t, adopters, "dogfan")

	err := svc.Delete(ctx, auth.Identity{Username: "dogfan", Kind: auth.KindShelter}, "dogfan")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Delete() as same-named shelter error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}, "dogfan"); err != nil {
		t.Fatalf("Delete() as self error = %v", err)
	}
	if _, err := adopters.Get(ctx, "dogfan"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("adopter still present after delete: %v", err)
	}
}
