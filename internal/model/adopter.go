package model

// DefaultAdopterPicture is substituted when registration omits a picture.
const DefaultAdopterPicture = "/assets/user.png"

// Adopter is an individual browsing and favoriting dogs. Adopters exist
// only in the local store, so the id is a plain integer. PasswordHash is
// never serialized.
type Adopter struct {
	ID              int64    `json:"id"`
	Username        string   `json:"username"`
	PasswordHash    string   `json:"-"`
	Email           string   `json:"email"`
	Picture         string   `json:"picture"`
	Description     string   `json:"description"`
	PrivateOutdoors bool     `json:"privateOutdoors"`
	NumOfDogs       int      `json:"numOfDogs"`
	PreferredGender string   `json:"preferredGender"`
	PreferredAge    string   `json:"preferredAge"`
	IsAdmin         bool     `json:"isAdmin"`

	// FavoriteDogIDs is hydrated on single-adopter lookups only. Ids are
	// kept as strings so one list spans both id spaces.
	FavoriteDogIDs []string `json:"favDogIds,omitempty"`
}

// FavoriteEntry relates one adopter to one favorited dog. At most one
// entry exists per (adopter, dog) pair; a duplicate favorite fails rather
// than upserting. DogID is text so the ledger can hold remote catalog ids
// alongside local ones.
type FavoriteEntry struct {
	AdopterID int64  `json:"adopterId"`
	DogID     string `json:"dogId"`
}
