package sqlite

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/repository"
)

func TestBuildPartialUpdate(t *testing.T) {
	patch := new(repository.Patch).
		Set("name", "Rex").
		Set("goodWKids", true).
		Set("age", "adult")

	setClause, args, err := buildPartialUpdate(patch, map[string]string{
		"goodWKids": "good_w_kids",
	})
	if err != nil {
		t.Fatalf("buildPartialUpdate() error = %v", err)
	}

	want := "name = ?, good_w_kids = ?, age = ?"
	if setClause != want {
		t.Errorf("setClause = %q, want %q", setClause, want)
	}
	if !reflect.DeepEqual(args, []any{"Rex", true, "adult"}) {
		t.Errorf("args = %v, want [Rex true adult]", args)
	}
}

func TestBuildPartialUpdate_IdentityMapping(t *testing.T) {
	// Fields absent from the alias table keep their name as the column.
	patch := new(repository.Patch).Set("city", "Breck").Set("state", "CO")

	setClause, args, err := buildPartialUpdate(patch, nil)
	if err != nil {
		t.Fatalf("buildPartialUpdate() error = %v", err)
	}
	if setClause != "city = ?, state = ?" {
		t.Errorf("setClause = %q", setClause)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestBuildPartialUpdate_CountMatchesFields(t *testing.T) {
	// Assignment count equals field count, and argument order matches the
	// order fields were set in.
	patch := new(repository.Patch)
	values := []any{"a", 2, true, nil, "e"}
	names := []string{"f1", "f2", "f3", "f4", "f5"}
	for i, n := range names {
		patch.Set(n, values[i])
	}

	setClause, args, err := buildPartialUpdate(patch, nil)
	if err != nil {
		t.Fatalf("buildPartialUpdate() error = %v", err)
	}

	count := 0
	for _, frag := range splitAssignments(setClause) {
		if frag != "" {
			count++
		}
	}
	if count != patch.Len() {
		t.Errorf("assignment count = %d, want %d", count, patch.Len())
	}
	if !reflect.DeepEqual(args, values) {
		t.Errorf("args = %v, want %v", args, values)
	}
}

func TestBuildPartialUpdate_Deterministic(t *testing.T) {
	patch := new(repository.Patch).
		Set("preferredGender", "female").
		Set("numOfDogs", 3)
	aliases := map[string]string{
		"preferredGender": "preferred_gender",
		"numOfDogs":       "num_of_dogs",
	}

	first, firstArgs, err := buildPartialUpdate(patch, aliases)
	if err != nil {
		t.Fatalf("buildPartialUpdate() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, againArgs, err := buildPartialUpdate(patch, aliases)
		if err != nil {
			t.Fatalf("buildPartialUpdate() error = %v", err)
		}
		if again != first {
			t.Fatalf("output changed between calls: %q vs %q", again, first)
		}
		if !reflect.DeepEqual(againArgs, firstArgs) {
			t.Fatalf("args changed between calls: %v vs %v", againArgs, firstArgs)
		}
	}
}

func TestBuildPartialUpdate_EmptyPatch(t *testing.T) {
	_, _, err := buildPartialUpdate(new(repository.Patch), nil)
	if !errors.Is(err, apperror.ErrInvalidUpdate) {
		t.Errorf("empty patch error = %v, want ErrInvalidUpdate", err)
	}

	_, _, err = buildPartialUpdate(nil, nil)
	if !errors.Is(err, apperror.ErrInvalidUpdate) {
		t.Errorf("nil patch error = %v, want ErrInvalidUpdate", err)
	}
}

func splitAssignments(setClause string) []string {
	var out []string
	start := 0
	for i := 0; i+1 < len(setClause); i++ {
		if setClause[i] == ',' && setClause[i+1] == ' ' {
			out = append(out, setClause[start:i])
			start = i + 2
		}
	}
	return append(out, setClause[start:])
}
