package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EntityID identifies a dog or shelter in exactly one of two disjoint id
// spaces: local ids are store-assigned integers, remote ids are opaque
// strings assigned by the external catalog. Keeping the tag inside the
// type means merge logic can never accidentally compare across spaces.
//
// The zero value is "no id" (IsZero reports true); a local id of 0 is
// never issued by the store.
type EntityID struct {
	local  int64
	remote string
}

// LocalID returns the EntityID for a store-assigned integer id.
func LocalID(n int64) EntityID {
	return EntityID{local: n}
}

// RemoteID returns the EntityID for an external catalog id.
func RemoteID(s string) EntityID {
	return EntityID{remote: s}
}

func (id EntityID) IsZero() bool {
	return id.local == 0 && id.remote == ""
}

func (id EntityID) IsLocal() bool {
	return id.local != 0
}

func (id EntityID) IsRemote() bool {
	return id.remote != ""
}

// Local returns the store-assigned id and whether this is a local id.
func (id EntityID) Local() (int64, bool) {
	return id.local, id.local != 0
}

// Remote returns the catalog id and whether this is a remote id.
func (id EntityID) Remote() (string, bool) {
	return id.remote, id.remote != ""
}

func (id EntityID) String() string {
	if id.remote != "" {
		return id.remote
	}
	return strconv.FormatInt(id.local, 10)
}

// MarshalJSON renders local ids as JSON numbers and remote ids as JSON
// strings, mirroring what the upstream sources themselves return.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if id.remote != "" {
		return json.Marshal(id.remote)
	}
	return json.Marshal(id.local)
}

func (id *EntityID) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*id = LocalID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = RemoteID(s)
		return nil
	}
	return fmt.Errorf("model: entity id must be a number or a string, got %s", b)
}
