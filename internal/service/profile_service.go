package service

import (
	"context"
	"fmt"

	"tradebooks/internal/events"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

// BusinessProfileRequest mirrors the settings form; every field optional.
type BusinessProfileRequest struct {
	BusinessName    string `json:"businessName"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ABN             string `json:"abn"`
	LogoDataURL     string `json:"logoDataUrl"`
	BankName        string `json:"bankName"`
	BankBSB         string `json:"bankBSB"`
	BankAccount     string `json:"bankAccount"`
	BankAccountName string `json:"bankAccountName"`
}

type BusinessProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.BusinessProfile, error)
	Set(ctx context.Context, userID uuid.UUID, req BusinessProfileRequest) (*model.BusinessProfile, error)
}

type businessProfileService struct {
	profileRepo repository.BusinessProfileRepository
	hub         *events.Hub
}

func NewBusinessProfileService(profileRepo repository.BusinessProfileRepository, hub *events.Hub) BusinessProfileService {
	return &businessProfileService{profileRepo: profileRepo, hub: hub}
}

func (s *businessProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.BusinessProfile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business profile: %w", err)
	}
	return profile, nil
}

func (s *businessProfileService) Set(ctx context.Context, userID uuid.UUID, req BusinessProfileRequest) (*model.BusinessProfile, error) {
	profile := &model.BusinessProfile{
		UserID:          userID,
		BusinessName:    req.BusinessName,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		ABN:             req.ABN,
		LogoDataURL:     req.LogoDataURL,
		BankName:        req.BankName,
		BankBSB:         req.BankBSB,
		BankAccount:     req.BankAccount,
		BankAccountName: req.BankAccountName,
	}
	if err := s.profileRepo.Set(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save business profile: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityProfile)
	}
	return profile, nil
}
