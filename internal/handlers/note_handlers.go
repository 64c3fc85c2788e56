package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// NoteHandler handles the note CRUD routes. All routes sit behind the
// user session middleware.
type NoteHandler struct {
	notes NoteManager
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(notes NoteManager) *NoteHandler {
	if notes == nil {
		panic("notes cannot be nil")
	}
	return &NoteHandler{
		notes: notes,
	}
}

// Create adds a note for the authenticated user.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	var req models.NoteRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	note, err := h.notes.Create(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, note)
}

// List returns all notes of the authenticated user.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	notes, err := h.notes.List(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, notes)
}

// Update modifies a note owned by the authenticated user.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		utils.BadRequest(w, "Invalid note ID", nil)
		return
	}

	var req models.NoteRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	note, err := h.notes.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, note)
}

// Delete removes a note owned by the authenticated user.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetAccountID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		utils.BadRequest(w, "Invalid note ID", nil)
		return
	}

	if err := h.notes.Delete(r.Context(), userID, noteID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

// noteIDParam parses the {id} URL parameter.
func noteIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
