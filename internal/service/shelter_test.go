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

func newShelterServiceFixture(t *testing.T) (*ShelterService, *mockShelterRepo, *mockCatalog) {
	t.Helper()
	shelters := newMockShelterRepo()
	catalog := newMockCatalog()
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return NewShelterService(shelters, catalog, passwords, testLogger()), shelters, catalog
}

func TestShelterList_MergesLocalFirst(t *testing.T) {
	svc, shelters, catalog := newShelterServiceFixture(t)
	ctx := context.Background()

	seedShelter(t, shelters, "paws1")
	catalog.shelters = []model.Shelter{{ID: model.RemoteID("NY417"), Name: "NY Rescue"}}

	got, err := svc.List(ctx, repository.ShelterFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d shelters, want 2", len(got))
	}
	if !got[0].ID.IsLocal() || !got[1].ID.IsRemote() {
		t.Errorf("List() order = %v, want local first", got)
	}
}

func TestShelterGet_RemoteOnly(t *testing.T) {
	svc, _, catalog := newShelterServiceFixture(t)
	catalog.orgByID["NY417"] = &model.Shelter{ID: model.RemoteID("NY417"), Name: "NY Rescue"}

	got, err := svc.Get(context.Background(), "NY417")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "NY Rescue" {
		t.Errorf("Get() = %v, want [NY Rescue]", got)
	}

	if _, err := svc.Get(context.Background(), "ZZ1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(ZZ1) error = %v, want ErrNotFound", err)
	}
}

func TestShelterUpdate_Authorization(t *testing.T) {
	svc, shelters, _ := newShelterServiceFixture(t)
	ctx := context.Background()
	seedShelter(t, shelters, "paws1")

	patch := new(repository.Patch).Set("name", "Happier Paws")

	_, err := svc.Update(ctx, auth.Identity{Username: "paws2", Kind: auth.KindShelter}, "paws1", patch)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() as other user error = %v, want ErrForbidden", err)
	}

	// An adopter registered under the same username is a different
	// account; the matching name must not grant access.
	_, err = svc.Update(ctx, auth.Identity{Username: "paws1", Kind: auth.KindAdopter}, "paws1", patch)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() as same-named adopter error = %v, want ErrForbidden", err)
	}

	got, err := svc.Update(ctx, auth.Identity{Username: "paws1", Kind: auth.KindShelter}, "paws1", patch)
	if err != nil {
		t.Fatalf("Update() as self error = %v", err)
	}
	if got.Name != "Happier Paws" {
		t.Errorf("Name = %q, want Happier Paws", got.Name)
	}

	// Admins may update anyone.
	if _, err := svc.Update(ctx, auth.Identity{Username: "root", IsAdmin: true}, "paws1", patch); err != nil {
		t.Errorf("Update() as admin error = %v", err)
	}
}

func TestShelterUpdatePassword(t *testing.T) {
	svc, shelters, _ := newShelterServiceFixture(t)
	ctx := context.Background()
	seedShelter(t, shelters, "paws1")

	identity := auth.Identity{Username: "paws1", Kind: auth.KindShelter}
	if err := svc.UpdatePassword(ctx, identity, "paws1", "new-pw"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	stored, err := shelters.GetCredentials(ctx, "paws1")
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "new-pw" {
		t.Errorf("stored hash = %q, want a bcrypt hash", stored.PasswordHash)
	}
}

func TestShelterDelete_Authorization(t *testing.T) {
	svc, shelters, _ := newShelterServiceFixture(t)
	ctx := context.Background()
	seedShelter(t, shelters, "paws1")

	err := svc.Delete(ctx, auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}, "paws1")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Delete() as other user error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, auth.Identity{Username: "paws1", Kind: auth.KindShelter}, "paws1"); err != nil {
		t.Fatalf("Delete() as self error = %v", err)
	}
	if _, err := shelters.GetByUsername(ctx, "paws1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("shelter still present after delete: %v", err)
	}
}
