package store

import (
	"context"
	"errors"
	"testing"

	"cloudnote/models"
)

func seed(t *testing.T, m *Memory) (owner, other models.User, note models.Note) {
	t.Helper()
	ctx := context.Background()

	m.CreateUser(ctx, models.User{Email: "owner@x.com", PasswordHash: "h"})
	m.CreateUser(ctx, models.User{Email: "other@x.com", PasswordHash: "h"})
	owner, _ = m.UserByEmail(ctx, "owner@x.com")
	other, _ = m.UserByEmail(ctx, "other@x.com")

	m.CreateNote(ctx, models.Note{Slug: "t1-1", Title: "t1", Content: "c", UserID: owner.ID})
	note, err := m.NoteBySlug(ctx, "t1-1")
	if err != nil {
		t.Fatalf("Failed to seed note: %v", err)
	}
	return owner, other, note
}

func TestMemoryDuplicateEmail(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.CreateUser(ctx, models.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("First CreateUser failed: %v", err)
	}
	if err := m.CreateUser(ctx, models.User{Email: "a@x.com"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestMemoryConditionalUpdate(t *testing.T) {
	m := NewMemory()
	owner, other, note := seed(t, m)
	ctx := context.Background()

	content := "edited"

	// Wrong owner never matches
	err := m.UpdateNote(ctx, note.ID, other.ID, NoteUpdate{Content: &content})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-owner update, got %v", err)
	}
	if got, _ := m.NoteBySlug(ctx, "t1-1"); got.Content != "c" {
		t.Errorf("Non-owner update changed the note: %q", got.Content)
	}

	// Owner update applies and bumps the updated timestamp
	before := note.UpdatedAt
	if err := m.UpdateNote(ctx, note.ID, owner.ID, NoteUpdate{Content: &content}); err != nil {
		t.Fatalf("Owner update failed: %v", err)
	}
	got, _ := m.NoteBySlug(ctx, "t1-1")
	if got.Content != "edited" {
		t.Errorf("Content not updated: %q", got.Content)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt was not bumped: %v -> %v", before, got.UpdatedAt)
	}
}

func TestMemoryConditionalDelete(t *testing.T) {
	m := NewMemory()
	owner, other, note := seed(t, m)
	ctx := context.Background()

	if err := m.DeleteNote(ctx, note.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-owner delete, got %v", err)
	}
	if _, err := m.NoteBySlug(ctx, "t1-1"); err != nil {
		t.Fatalf("Note vanished after denied delete: %v", err)
	}

	if err := m.DeleteNote(ctx, note.ID, owner.ID); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	if _, err := m.NoteBySlug(ctx, "t1-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again reports not found
	if err := m.DeleteNote(ctx, note.ID, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestMemoryNotesByUserOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.CreateUser(ctx, models.User{Email: "a@x.com"})
	u, _ := m.UserByEmail(ctx, "a@x.com")

	m.CreateNote(ctx, models.Note{Slug: "first-1", Title: "first", UserID: u.ID})
	m.CreateNote(ctx, models.Note{Slug: "second-2", Title: "second", UserID: u.ID})

	notes, err := m.NotesByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("NotesByUser failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "second" {
		t.Errorf("Expected most recent note first, got %q", notes[0].Title)
	}
}
