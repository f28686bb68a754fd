package auth

// Kind distinguishes the two account types.
type Kind string

const (
	KindShelter Kind = "shelter"
	KindAdopter Kind = "adopter"
)

// Identity is the authenticated caller, extracted from a verified token.
// It is passed explicitly into service operations; there is no ambient
// current-user state.
type Identity struct {
	Username string
	Kind     Kind
	IsAdmin  bool
}

// CanActFor reports whether the identity may mutate the account of the
// given kind and username: that account's owner, or an admin. Shelters
// and adopters have independent username spaces, so a username match
// alone proves nothing; the kind must match too.
func (id Identity) CanActFor(kind Kind, username string) bool {
	return id.IsAdmin || (id.Kind == kind && id.Username == username)
}
