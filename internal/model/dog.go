package model

// DefaultDogPicture is substituted when neither the caller nor the remote
// catalog provides a photo.
const DefaultDogPicture = "/assets/dog.png"

// Dog is an adoptable dog from either source.
//
// BreedID is set only on local records (a foreign key into the breeds
// table); remote records carry the breed as a literal name string. Breed
// is populated on both — joined from the lookup table for local rows,
// taken verbatim from the catalog for remote ones. Merge logic must not
// assume a common breed representation beyond the name.
type Dog struct {
	ID          EntityID `json:"id"`
	Name        string   `json:"name"`
	BreedID     int64    `json:"breedId,omitempty"`
	Breed       string   `json:"breed"`
	Gender      string   `json:"gender"`
	Age         string   `json:"age"`
	Picture     string   `json:"picture"`
	Description string   `json:"description"`
	GoodWKids   TriState `json:"goodWKids"`
	GoodWDogs   TriState `json:"goodWDogs"`
	GoodWCats   TriState `json:"goodWCats"`
	ShelterID   EntityID `json:"shelterId"`

	// Shelter is hydrated on single-dog lookups only.
	Shelter *Shelter `json:"shelter,omitempty"`
}
