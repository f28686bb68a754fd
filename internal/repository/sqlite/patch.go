package sqlite

import (
	"fmt"
	"strings"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/repository"
)

// buildPartialUpdate turns a sparse patch into a SET clause and its
// positionally-matched arguments:
//
//	patch {name: "Rex", goodWKids: true}, aliases {goodWKids: good_w_kids}
//	→ "name = ?, good_w_kids = ?", ["Rex", true]
//
// Field names missing from the alias table are used as column names
// unchanged. Assignments come out in the patch's insertion order — the
// same patch always yields the same SQL and the same argument order.
//
// Returns apperror.ErrInvalidUpdate for an empty patch: there is nothing
// to set, which is always a caller bug. Values are bound, never
// interpolated; this function does not validate value types.
func buildPartialUpdate(patch *repository.Patch, aliases map[string]string) (string, []any, error) {
	if patch == nil || patch.Len() == 0 {
		return "", nil, apperror.InvalidUpdate()
	}

	assignments := make([]string, 0, patch.Len())
	args := make([]any, 0, patch.Len())

	for _, f := range patch.Fields() {
		column := f.Name
		if alias, ok := aliases[f.Name]; ok {
			column = alias
		}
		assignments = append(assignments, fmt.Sprintf("%s = ?", column))
		args = append(args, f.Value)
	}

	return strings.Join(assignments, ", "), args, nil
}
