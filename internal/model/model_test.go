package model

import (
	"encoding/json"
	"testing"
)

func TestEntityIDSpacesAreDisjoint(t *testing.T) {
	local := LocalID(7)
	remote := RemoteID("7")

	if local == remote {
		t.Error("LocalID(7) must not equal RemoteID(\"7\") — the id spaces are disjoint")
	}
	if !local.IsLocal() || local.IsRemote() {
		t.Error("LocalID should report IsLocal and not IsRemote")
	}
	if !remote.IsRemote() || remote.IsLocal() {
		t.Error("RemoteID should report IsRemote and not IsLocal")
	}

	if n, ok := local.Local(); !ok || n != 7 {
		t.Errorf("Local() = (%d, %v), want (7, true)", n, ok)
	}
	if s, ok := remote.Remote(); !ok || s != "7" {
		t.Errorf("Remote() = (%q, %v), want (\"7\", true)", s, ok)
	}
}

func TestEntityIDZero(t *testing.T) {
	var id EntityID
	if !id.IsZero() {
		t.Error("zero EntityID should report IsZero")
	}
	if id.IsLocal() || id.IsRemote() {
		t.Error("zero EntityID belongs to neither id space")
	}
}

func TestEntityIDJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		json string
	}{
		{"local renders as number", LocalID(42), "42"},
		{"remote renders as string", RemoteID("NJ333"), `"NJ333"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(b) != tt.json {
				t.Errorf("Marshal = %s, want %s", b, tt.json)
			}

			var back EntityID
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if back != tt.id {
				t.Errorf("round trip = %v, want %v", back, tt.id)
			}
		})
	}
}

func TestParseTriState(t *testing.T) {
	tests := []struct {
		in      string
		want    TriState
		wantErr bool
	}{
		{"", TriUnknown, false},
		{"yes", TriYes, false},
		{"true", TriYes, false},
		{"no", TriNo, false},
		{"false", TriNo, false},
		{"YES", TriYes, false},
		{" no ", TriNo, false},
		{"maybe", TriUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseTriState(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTriState(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTriState(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTriStateJSON(t *testing.T) {
	type flags struct {
		Kids TriState `json:"kids"`
	}

	tests := []struct {
		state TriState
		json  string
	}{
		{TriYes, `{"kids":true}`},
		{TriNo, `{"kids":false}`},
		{TriUnknown, `{"kids":null}`},
	}

	for _, tt := range tests {
		b, err := json.Marshal(flags{Kids: tt.state})
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.state, err)
		}
		if string(b) != tt.json {
			t.Errorf("Marshal(%v) = %s, want %s", tt.state, b, tt.json)
		}

		var back flags
		if err := json.Unmarshal([]byte(tt.json), &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.json, err)
		}
		if back.Kids != tt.state {
			t.Errorf("round trip of %s = %v, want %v", tt.json, back.Kids, tt.state)
		}
	}
}
