package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
)

type fakeSender struct {
	to, subject, body string
	calls             int
}

func (f *fakeSender) Send(_ context.Context, to, subject, htmlBody string) error {
	f.calls++
	f.to, f.subject, f.body = to, subject, htmlBody
	return nil
}

func TestContactShelter(t *testing.T) {
	shelters := newMockShelterRepo()
	adopters := newMockAdopterRepo()
	ctx := context.Background()
	if err := shelters.Create(ctx, &model.Shelter{Username: "paws1", Email: "info@paws.org"}); err != nil {
		t.Fatalf("seeding shelter: %v", err)
	}
	if err := adopters.Create(ctx, &model.Adopter{Username: "dogfan", Email: "dogfan@example.com"}); err != nil {
		t.Fatalf("seeding adopter: %v", err)
	}
	sender := &fakeSender{}
	svc := NewContactService(shelters, adopters, sender, testLogger())

	identity := auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}
	err := svc.ContactShelter(ctx, identity, "paws1", "Sam", "About Rex", "Is Rex still available?")
	if err != nil {
		t.Fatalf("ContactShelter() error = %v", err)
	}

	if sender.calls != 1 || sender.to != "info@paws.org" {
		t.Errorf("sent to %q (%d calls), want info@paws.org once", sender.to, sender.calls)
	}
	if sender.subject != "About Rex" {
		t.Errorf("subject = %q", sender.subject)
	}
	for _, fragment := range []string{"Sam", "Is Rex still available?", "dogfan@example.com"} {
		if !strings.Contains(sender.body, fragment) {
			t.Errorf("body missing %q:\n%s", fragment, sender.body)
		}
	}
}

func TestContactShelter_UnknownShelter(t *testing.T) {
	svc := NewContactService(newMockShelterRepo(), newMockAdopterRepo(), &fakeSender{}, testLogger())
	identity := auth.Identity{Username: "dogfan", Kind: auth.KindAdopter}
	err := svc.ContactShelter(context.Background(), identity, "nobody", "Sam", "Hi", "Hello")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ContactShelter() error = %v, want ErrNotFound", err)
	}
}
