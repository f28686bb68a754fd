package service

import (
	"context"
	"log/slog"

	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/notify"
	"github.com/sakif/dogmatch/internal/repository"
)

// ContactService lets a logged-in adopter email a shelter about a
// listing. The adopter's own address rides in the body as the reply
// contact; mail goes out through the injected sender.
type ContactService struct {
	shelters repository.ShelterRepository
	adopters repository.AdopterRepository
	sender   notify.EmailSender
	logger   *slog.Logger
}

func NewContactService(
	shelters repository.ShelterRepository,
	adopters repository.AdopterRepository,
	sender notify.EmailSender,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		shelters: shelters,
		adopters: adopters,
		sender:   sender,
		logger:   logger,
	}
}

// ContactShelter sends the adopter's message to the named local
// shelter. The adopter's profile supplies the reply address; name is
// whatever the adopter typed into the contact form.
func (s *ContactService) ContactShelter(ctx context.Context, identity auth.Identity, shelterUsername, name, subject, message string) error {
	shelter, err := s.shelters.GetByUsername(ctx, shelterUsername)
	if err != nil {
		return err
	}
	adopter, err := s.adopters.Get(ctx, identity.Username)
	if err != nil {
		return err
	}

	body := notify.ContactShelterBody(name, adopter.Email, message)
	if err := s.sender.Send(ctx, shelter.Email, subject, body); err != nil {
		return err
	}
	s.logger.Info("contact email sent", "shelter", shelterUsername, "adopter", identity.Username)
	return nil
}
