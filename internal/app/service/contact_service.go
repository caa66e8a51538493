package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"github.com/shopworks/storefront-backend/pkg/mailer"
	"gorm.io/gorm"
)

var (
	ErrContactFieldsMissing   = errors.New("all contact fields are required")
	ErrContactInvalidEmail    = errors.New("invalid contact email address")
	ErrContactMessageNotFound = errors.New("contact message not found")
)

// ContactInput is a contact form submission. All four fields are required.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService interface {
	SubmitMessage(input ContactInput) (*model.ContactMessage, error)
	ListMessages(limit, offset int) ([]model.ContactMessage, error)
	MarkMessageRead(id uint) (*model.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
	mailer      mailer.Mailer
	recipient   string
}

func NewContactService(
	contactRepo repository.ContactRepository,
	m mailer.Mailer,
	recipient string,
) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      m,
		recipient:   recipient,
	}
}

// SubmitMessage validates and stores a contact form submission, then tries
// to notify the site operators by email. A failed notification is logged
// and otherwise ignored: the submission already succeeded from the
// sender's point of view, and the stored row is the durable copy.
func (s *contactService) SubmitMessage(input ContactInput) (*model.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Message)

	if name == "" || email == "" || subject == "" || body == "" {
		logger.Warn("Contact submission rejected: missing fields", map[string]interface{}{
			"email": email,
		})
		return nil, ErrContactFieldsMissing
	}
	if _, err := mail.ParseAddress(email); err != nil {
		logger.Warn("Contact submission rejected: invalid email", map[string]interface{}{
			"email": email,
		})
		return nil, ErrContactInvalidEmail
	}

	message := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}

	if err := s.contactRepo.Create(message); err != nil {
		return nil, err
	}

	logger.Info("Contact message stored", map[string]interface{}{
		"message_id": message.ID,
		"email":      email,
	})

	if s.mailer != nil && s.recipient != "" {
		notification := fmt.Sprintf(
			"From: %s <%s>\r\n\r\n%s",
			name, email, body,
		)
		if err := s.mailer.Send(s.recipient, "Contact form: "+subject, notification); err != nil {
			logger.Error("Failed to send contact notification email", err, map[string]interface{}{
				"message_id": message.ID,
				"recipient":  s.recipient,
			})
		}
	}

	return message, nil
}

func (s *contactService) ListMessages(limit, offset int) ([]model.ContactMessage, error) {
	messages, err := s.contactRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list contact messages", err, nil)
		return nil, err
	}
	return messages, nil
}

func (s *contactService) MarkMessageRead(id uint) (*model.ContactMessage, error) {
	if _, err := s.contactRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactMessageNotFound
		}
		return nil, err
	}

	if err := s.contactRepo.MarkRead(id); err != nil {
		return nil, err
	}
	return s.contactRepo.FindByID(id)
}
