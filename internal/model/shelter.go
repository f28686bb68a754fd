package model

// DefaultShelterLogo is substituted when neither the caller nor the remote
// catalog provides a logo.
const DefaultShelterLogo = "/assets/shelter.jpg"

// Shelter is an organization listing adoptable dogs. Local records carry
// credentials; remote catalog records have no username or password hash.
// PasswordHash is never serialized.
type Shelter struct {
	ID           EntityID `json:"id"`
	Username     string   `json:"username,omitempty"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Postcode     string   `json:"postcode"`
	PhoneNumber  string   `json:"phoneNumber"`
	Email        string   `json:"email"`
	Logo         string   `json:"logo"`
	Description  string   `json:"description"`
	IsAdmin      bool     `json:"isAdmin"`

	// AdoptableDogs is hydrated on single-shelter lookups only.
	AdoptableDogs []Dog `json:"adoptableDogs,omitempty"`
}
