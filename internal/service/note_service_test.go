package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/service"
	"github.com/inotebook/backend/internal/utils"
)

func TestNoteService_Create(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.UserID == 7 && n.Title == "Shopping list" && n.Category == "Work"
	})).Return(nil)

	note, err := svc.Create(context.Background(), 7, &models.NoteRequest{
		Title:       "Shopping list",
		Description: "Milk, eggs, bread",
		Category:    "Work",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
	noteRepo.AssertExpectations(t)
}

func TestNoteService_Create_DefaultsCategory(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.Category == "General"
	})).Return(nil)

	note, err := svc.Create(context.Background(), 7, &models.NoteRequest{
		Title:       "Untagged",
		Description: "No category given",
	})

	require.NoError(t, err)
	assert.Equal(t, "General", note.Category)
	noteRepo.AssertExpectations(t)
}

func TestNoteService_List(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	stored := []*models.Note{
		{ID: 2, UserID: 7, Title: "Newest"},
		{ID: 1, UserID: 7, Title: "Oldest"},
	}
	noteRepo.On("GetAllForUser", mock.Anything, int64(7)).Return(stored, nil)

	notes, err := svc.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, stored, notes)
	noteRepo.AssertExpectations(t)
}

func TestNoteService_Update(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	noteRepo.On("Update", mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.ID == 3 && n.UserID == 7 && n.Title == "Edited"
	})).Return(nil)

	note, err := svc.Update(context.Background(), 7, 3, &models.NoteRequest{
		Title:       "Edited",
		Description: "Edited body",
		Category:    "Personal",
	})

	require.NoError(t, err)
	assert.Equal(t, "Edited", note.Title)
	noteRepo.AssertExpectations(t)
}

func TestNoteService_Update_NotOwned(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	noteRepo.On("Update", mock.Anything, mock.Anything).
		Return(utils.NewNotFoundError("Note", 3))

	_, err := svc.Update(context.Background(), 999, 3, &models.NoteRequest{
		Title:       "Edited",
		Description: "Edited body",
	})

	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	noteRepo.AssertExpectations(t)
}

func TestNoteService_Delete(t *testing.T) {
	noteRepo := new(MockNoteRepository)
	svc := service.NewNoteService(noteRepo)

	noteRepo.On("Delete", mock.Anything, int64(3), int64(7)).Return(nil)

	err := svc.Delete(context.Background(), 7, 3)

	assert.NoError(t, err)
	noteRepo.AssertExpectations(t)
}
