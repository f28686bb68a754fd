// Package service contains the business logic layer: authorization
// checks, the merge of local store results with remote catalog results,
// and orchestration across repositories, the catalog client and the
// token/email collaborators. Handlers call services; services call
// repositories and the catalog. The authenticated identity is always an
// explicit parameter, never ambient state.
package service

import (
	"context"

	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// Catalog is the remote pet-listing API surface the services consume.
// Single-record lookups return (nil, nil) when the catalog has no such
// record; absence is not an error.
type Catalog interface {
	ListDogs(ctx context.Context, f repository.DogFilter) ([]model.Dog, error)
	GetDog(ctx context.Context, id string) (*model.Dog, error)
	ListShelters(ctx context.Context, f repository.ShelterFilter) ([]model.Shelter, error)
	GetShelter(ctx context.Context, id string) (*model.Shelter, error)
	ListBreeds(ctx context.Context) ([]string, error)
}

// MergeLists combines store and catalog results: local records first,
// then remote, in their source order. The two id spaces are disjoint, so
// no de-duplication happens; an empty side degrades to just the other.
func MergeLists[T any](local, remote []T) []T {
	merged := make([]T, 0, len(local)+len(remote))
	merged = append(merged, local...)
	merged = append(merged, remote...)
	return merged
}

// MergeOne collects whichever of the two single-source lookups resolved,
// local first. Both can be present when the two id spaces happen to
// collide on the same literal, so the result has zero to two entries.
func MergeOne[T any](local, remote *T) []T {
	merged := make([]T, 0, 2)
	if local != nil {
		merged = append(merged, *local)
	}
	if remote != nil {
		merged = append(merged, *remote)
	}
	return merged
}
