package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testPasswords() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestPasswordHashAndVerify(t *testing.T) {
	p := testPasswords()

	hash, err := p.Hash("secret-pw")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret-pw" {
		t.Fatal("Hash() returned the plaintext")
	}
	if err := p.Verify(hash, "secret-pw"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
	if err := p.Verify(hash, "wrong-pw"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Verify() with wrong password error = %v, want ErrWrongPassword", err)
	}
}

func TestPasswordHash_Salted(t *testing.T) {
	p := testPasswords()

	first, err := p.Hash("secret-pw")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := p.Hash("secret-pw")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestPasswordHash_TooLong(t *testing.T) {
	p := testPasswords()
	if _, err := p.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("Hash() of 73-byte password succeeded, want error")
	}
}
