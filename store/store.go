// Package store holds the persistence layer: a Store interface plus a MySQL
// implementation for production and an in-memory one for tests.
package store

import (
	"context"
	"errors"

	"cloudnote/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// NoteUpdate carries the fields of a note mutation. A nil field is left
// unchanged. Slug is set together with Title since the slug is derived
// from the title.
type NoteUpdate struct {
	Slug    *string
	Title   *string
	Content *string
}

type Store interface {
	CreateUser(ctx context.Context, u models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)

	CreateNote(ctx context.Context, n models.Note) error
	NoteBySlug(ctx context.Context, slug string) (models.Note, error)
	// NotesByUser returns the user's notes, most recently updated first.
	NotesByUser(ctx context.Context, userID int) ([]models.Note, error)
	// UpdateNote and DeleteNote mutate a note only if it is owned by userID,
	// in a single conditional statement so the ownership check cannot race
	// with the write. ErrNotFound means no such note was owned by the user.
	UpdateNote(ctx context.Context, noteID, userID int, upd NoteUpdate) error
	DeleteNote(ctx context.Context, noteID, userID int) error
}
