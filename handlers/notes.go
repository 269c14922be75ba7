package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cloudnote/middleware"
	"cloudnote/models"
	"cloudnote/store"
)

type createNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

var noteMessages = map[string]string{
	"Title":   "Please enter note title!",
	"Content": "Please enter note content!",
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteSummary struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// newSlug derives the note's external identifier from its title. The slug
// changes whenever the title does, so it is not stable across edits.
func newSlug(title string) string {
	return fmt.Sprintf("%s-%d", title, time.Now().UnixMilli())
}

// callerUser resolves the authenticated email to its user row. The token has
// already been verified, so a missing user is a defensive 404.
func callerUser(w http.ResponseWriter, r *http.Request, s store.Store) (models.User, bool) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "Unauthorized Access Request!")
		return models.User{}, false
	}

	user, err := s.UserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, "User does not exists!")
			return models.User{}, false
		}
		internalError(w, err)
		return models.User{}, false
	}
	return user, true
}

// CreateNote saves a new note owned by the authenticated user.
func CreateNote(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusForbidden, validationMessage(err, noteMessages))
			return
		}

		user, ok := callerUser(w, r, s)
		if !ok {
			return
		}

		note := models.Note{
			Slug:    newSlug(req.Title),
			Title:   req.Title,
			Content: req.Content,
			UserID:  user.ID,
		}
		if err := s.CreateNote(r.Context(), note); err != nil {
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Your note saved successfully.")
	}
}

// ListNotes returns the authenticated user's notes, most recently updated
// first. Listing is always scoped to the caller.
func ListNotes(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := callerUser(w, r, s)
		if !ok {
			return
		}

		notes, err := s.NotesByUser(r.Context(), user.ID)
		if err != nil {
			internalError(w, err)
			return
		}

		summaries := make([]noteSummary, 0, len(notes))
		for _, n := range notes {
			summaries = append(summaries, noteSummary{
				Slug:      n.Slug,
				Title:     n.Title,
				Content:   n.Content,
				UpdatedAt: n.UpdatedAt,
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// UpdateNote changes a note's title and/or content. A title change
// regenerates the slug, so the caller must follow the new identifier.
func UpdateNote(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		var req updateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		if req.Title == "" && req.Content == "" {
			writeJSON(w, http.StatusBadRequest, "No data to update!")
			return
		}

		user, ok := callerUser(w, r, s)
		if !ok {
			return
		}

		note, err := s.NoteBySlug(r.Context(), slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, "Note does not exists!")
				return
			}
			internalError(w, err)
			return
		}
		if note.UserID != user.ID {
			writeJSON(w, http.StatusForbidden, "You do not own this note!")
			return
		}

		var upd store.NoteUpdate
		if req.Title != "" {
			fresh := newSlug(req.Title)
			upd.Title = &req.Title
			upd.Slug = &fresh
		}
		if req.Content != "" {
			upd.Content = &req.Content
		}

		if err := s.UpdateNote(r.Context(), note.ID, user.ID, upd); err != nil {
			// the note vanished between lookup and conditional write
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, "Note does not exists!")
				return
			}
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Note updated successfully.")
	}
}

// DeleteNote removes a note owned by the authenticated user.
func DeleteNote(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		user, ok := callerUser(w, r, s)
		if !ok {
			return
		}

		note, err := s.NoteBySlug(r.Context(), slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, "Note does not exists!")
				return
			}
			internalError(w, err)
			return
		}
		if note.UserID != user.ID {
			writeJSON(w, http.StatusForbidden, "You do not own this note!")
			return
		}

		if err := s.DeleteNote(r.Context(), note.ID, user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, "Note does not exists!")
				return
			}
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Note deleted successfully.")
	}
}
