package service

import (
	"context"
	"fmt"
	"strings"

	"tradebooks/internal/apperr"
	"tradebooks/internal/events"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type SaveContactRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// --- Interface ---

type ContactService interface {
	List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveContactRequest) (*ContactResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	hub         *events.Hub
}

func NewContactService(contactRepo repository.ContactRepository, hub *events.Hub) ContactService {
	return &contactService{contactRepo: contactRepo, hub: hub}
}

// --- Implementation ---

func (s *contactService) List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	result := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		result = append(result, toContactResponse(&contacts[i]))
	}
	return result, nil
}

func (s *contactService) Save(ctx context.Context, userID uuid.UUID, req SaveContactRequest) (*ContactResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("contact name is required")
	}

	contact := &model.Contact{
		ID:      parseOrNewID(req.ID),
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.contactRepo.Upsert(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityContacts)
	}

	resp := toContactResponse(contact)
	return &resp, nil
}

func (s *contactService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	contactID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid contact id")
	}
	if err := s.contactRepo.Delete(ctx, userID, contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityContacts)
	}
	return nil
}

// --- Mapping ---

func toContactResponse(c *model.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		UpdatedAt: c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
