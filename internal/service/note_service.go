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

type SaveJobNoteRequest struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Customer string `json:"customer"`
	Content  string `json:"content"`
}

type JobNoteResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Customer string `json:"customer,omitempty"`
	Content  string `json:"content"`
}

// --- Interface ---

type JobNoteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]JobNoteResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveJobNoteRequest) (*JobNoteResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type jobNoteService struct {
	noteRepo repository.JobNoteRepository
	hub      *events.Hub
}

func NewJobNoteService(noteRepo repository.JobNoteRepository, hub *events.Hub) JobNoteService {
	return &jobNoteService{noteRepo: noteRepo, hub: hub}
}

// --- Implementation ---

func (s *jobNoteService) List(ctx context.Context, userID uuid.UUID) ([]JobNoteResponse, error) {
	notes, err := s.noteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job notes: %w", err)
	}
	result := make([]JobNoteResponse, 0, len(notes))
	for i := range notes {
		result = append(result, toJobNoteResponse(&notes[i]))
	}
	return result, nil
}

func (s *jobNoteService) Save(ctx context.Context, userID uuid.UUID, req SaveJobNoteRequest) (*JobNoteResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	date := req.Date
	if date == "" {
		date = todayString()
	}

	note := &model.JobNote{
		ID:       parseOrNewID(req.ID),
		UserID:   userID,
		Date:     date,
		Title:    strings.TrimSpace(req.Title),
		Customer: req.Customer,
		Content:  req.Content,
	}
	if err := s.noteRepo.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save job note: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityNotes)
	}

	resp := toJobNoteResponse(note)
	return &resp, nil
}

func (s *jobNoteService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	noteID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid job note id")
	}
	if err := s.noteRepo.Delete(ctx, userID, noteID); err != nil {
		return fmt.Errorf("failed to delete job note: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityNotes)
	}
	return nil
}

// --- Mapping ---

func toJobNoteResponse(n *model.JobNote) JobNoteResponse {
	return JobNoteResponse{
		ID:       n.ID.String(),
		Date:     n.Date,
		Title:    n.Title,
		Customer: n.Customer,
		Content:  n.Content,
	}
}
