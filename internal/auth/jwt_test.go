package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenService("test-secret-at-least-16")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	identity := Identity{Username: "paws1", Kind: KindShelter, IsAdmin: true}
	signed, err := tokens.Generate(identity)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Errorf("token %q is not three dot-separated parts", signed)
	}

	got, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != identity {
		t.Errorf("Validate() = %+v, want %+v", got, identity)
	}
}

func TestTokenValidate_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenService("test-secret-at-least-16")
	verifier, _ := NewTokenService("another-secret-also-16+")

	signed, err := issuer.Generate(Identity{Username: "dogfan", Kind: KindAdopter})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := verifier.Validate(signed); err == nil {
		t.Error("Validate() with wrong secret succeeded, want error")
	}
}

func TestTokenValidate_Garbage(t *testing.T) {
	tokens, _ := NewTokenService("test-secret-at-least-16")
	for _, bad := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := tokens.Validate(bad); err == nil {
			t.Errorf("Validate(%q) succeeded, want error", bad)
		}
	}
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Error("NewTokenService() with short secret succeeded, want error")
	}
}
