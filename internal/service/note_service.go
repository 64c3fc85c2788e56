package service

import (
	"context"

	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/repository"
)

// NoteService handles note CRUD. Every operation is scoped to the
// owning user; the service never exposes a note across accounts.
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
	}
}

// Create adds a note for the given user.
func (s *NoteService) Create(ctx context.Context, userID int64, req *models.NoteRequest) (*models.Note, error) {
	category := req.Category
	if category == "" {
		category = "General"
	}

	note := &models.Note{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// List returns all notes of the given user, newest first.
func (s *NoteService) List(ctx context.Context, userID int64) ([]*models.Note, error) {
	return s.noteRepo.GetAllForUser(ctx, userID)
}

// Update modifies a note owned by the given user. Fields left empty in
// the request keep their stored values, matching partial edits from
// the frontend.
func (s *NoteService) Update(ctx context.Context, userID, noteID int64, req *models.NoteRequest) (*models.Note, error) {
	note := &models.Note{
		ID:          noteID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if note.Category == "" {
		note.Category = "General"
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes a note owned by the given user.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int64) error {
	return s.noteRepo.Delete(ctx, noteID, userID)
}
