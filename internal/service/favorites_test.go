package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
)

func newFavoritesFixture(t *testing.T) (*FavoritesService, *mockDogRepo, *mockCatalog) {
	t.Helper()
	adopters := newMockAdopterRepo()
	if err := adopters.Create(context.Background(), &model.Adopter{Username: "dogfan"}); err != nil {
		t.Fatalf("seeding adopter: %v", err)
	}
	dogs := newMockDogRepo()
	catalog := newMockCatalog()
	svc := NewFavoritesService(adopters, newMockFavoriteRepo(), dogs, catalog, testLogger())
	return svc, dogs, catalog
}

func TestFavoriteUnfavoriteCycle(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()

	entry, err := svc.Favorite(ctx, "dogfan", "7")
	if err != nil {
		t.Fatalf("Favorite() error = %v", err)
	}
	if entry.DogID != "7" {
		t.Errorf("entry.DogID = %q, want 7", entry.DogID)
	}

	// Favoriting the same dog twice fails; the ledger holds one entry.
	if _, err := svc.Favorite(ctx, "dogfan", "7"); !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("second Favorite() error = %v, want ErrDuplicate", err)
	}
	ids, err := svc.ListDogIDs(ctx, "dogfan")
	if err != nil {
		t.Fatalf("ListDogIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "7" {
		t.Errorf("ListDogIDs() = %v, want [7]", ids)
	}

	// Unfavorite then favorite again succeeds.
	if err := svc.Unfavorite(ctx, "dogfan", "7"); err != nil {
		t.Fatalf("Unfavorite() error = %v", err)
	}
	if _, err := svc.Favorite(ctx, "dogfan", "7"); err != nil {
		t.Errorf("re-Favorite() error = %v", err)
	}
}

func TestUnfavorite_NeverFavorited(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	err := svc.Unfavorite(context.Background(), "dogfan", "7")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Unfavorite() error = %v, want ErrNotFound", err)
	}
}

func TestFavorite_UnknownAdopter(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	_, err := svc.Favorite(context.Background(), "nobody", "7")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Favorite() for unknown adopter error = %v, want ErrNotFound", err)
	}
}

func TestResolveFavorites_DropsVanishedDogs(t *testing.T) {
	svc, dogs, catalog := newFavoritesFixture(t)
	ctx := context.Background()

	// One local dog, one catalog dog, one id that resolves nowhere.
	local := &model.Dog{Name: "Rex"}
	if err := dogs.Create(ctx, local); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	catalog.dogByID["NY417"] = &model.Dog{ID: model.RemoteID("NY417"), Name: "Snoopy"}

	for _, id := range []string{"1", "NY417", "55555"} {
		if _, err := svc.Favorite(ctx, "dogfan", id); err != nil {
			t.Fatalf("Favorite(%s) error = %v", id, err)
		}
	}

	got, err := svc.ResolveFavorites(ctx, "dogfan")
	if err != nil {
		t.Fatalf("ResolveFavorites() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ResolveFavorites() = %v, want the two surviving dogs", got)
	}
	if got[0].Name != "Rex" || got[1].Name != "Snoopy" {
		t.Errorf("ResolveFavorites() order = [%s %s], want [Rex Snoopy]", got[0].Name, got[1].Name)
	}
}
