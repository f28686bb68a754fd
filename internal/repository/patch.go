package repository

// Patch is a sparse field-update request: an ordered list of external
// field names and their new values. It is a slice, not a map, so the
// order fields were set in is the order assignments are generated in —
// the same patch always produces the same SQL.
//
// Patch does not validate value types; request validation happens before
// a patch is built.
type Patch struct {
	fields []PatchField
}

type PatchField struct {
	Name  string
	Value any
}

// Set appends a field to the patch. Setting the same name twice appends
// twice; callers build patches from validated requests where that cannot
// happen.
func (p *Patch) Set(name string, value any) *Patch {
	p.fields = append(p.fields, PatchField{Name: name, Value: value})
	return p
}

// Fields returns the patch contents in insertion order.
func (p *Patch) Fields() []PatchField {
	return p.fields
}

// Len reports the number of fields in the patch.
func (p *Patch) Len() int {
	return len(p.fields)
}
