package model

import (
	"bytes"
	"fmt"
	"strings"
)

// TriState is the canonical representation of a dog's compatibility flags:
// yes, no, or unknown. The store keeps unknown as NULL; JSON keeps it as
// null. Query-string forms ("yes"/"no"/"true"/"false") are parsed at the
// handler boundary with ParseTriState — nothing past the handlers should
// ever see a string-typed flag.
type TriState int8

const (
	TriUnknown TriState = iota
	TriNo
	TriYes
)

// TriFromBool maps a known boolean onto the tri-state.
func TriFromBool(b bool) TriState {
	if b {
		return TriYes
	}
	return TriNo
}

// TriFromBoolPtr maps a nullable boolean onto the tri-state (nil = unknown).
func TriFromBoolPtr(b *bool) TriState {
	if b == nil {
		return TriUnknown
	}
	return TriFromBool(*b)
}

// Bool returns the flag as a boolean plus whether it is known at all.
func (t TriState) Bool() (value, known bool) {
	switch t {
	case TriYes:
		return true, true
	case TriNo:
		return false, true
	default:
		return false, false
	}
}

func (t TriState) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unknown"
	}
}

// ParseTriState accepts the query-string spellings the original API took
// on its various call paths. Empty means unknown (filter absent).
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TriUnknown, nil
	case "yes", "true":
		return TriYes, nil
	case "no", "false":
		return TriNo, nil
	default:
		return TriUnknown, fmt.Errorf("model: invalid tri-state value %q", s)
	}
}

var jsonNull = []byte("null")

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriYes:
		return []byte("true"), nil
	case TriNo:
		return []byte("false"), nil
	default:
		return jsonNull, nil
	}
}

func (t *TriState) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, jsonNull):
		*t = TriUnknown
	case bytes.Equal(b, []byte("true")):
		*t = TriYes
	case bytes.Equal(b, []byte("false")):
		*t = TriNo
	default:
		return fmt.Errorf("model: tri-state must be true, false or null, got %s", b)
	}
	return nil
}
