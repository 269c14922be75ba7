package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"cloudnote/models"
)

// Memory is a mutex-guarded in-memory Store. It backs the test suite so
// handlers can be exercised without a running MySQL instance.
type Memory struct {
	mu         sync.Mutex
	users      map[int]models.User
	notes      map[int]models.Note
	nextUserID int
	nextNoteID int
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int]models.User),
		notes:      make(map[int]models.Note),
		nextUserID: 1,
		nextNoteID: 1,
	}
}

func (m *Memory) CreateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = m.nextUserID
	m.nextUserID++
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateNote(_ context.Context, n models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID = m.nextNoteID
	m.nextNoteID++
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	m.notes[n.ID] = n
	return nil
}

func (m *Memory) NoteBySlug(_ context.Context, slug string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.notes {
		if n.Slug == slug {
			return n, nil
		}
	}
	return models.Note{}, ErrNotFound
}

func (m *Memory) NotesByUser(_ context.Context, userID int) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var notes []models.Note
	for _, n := range m.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

func (m *Memory) UpdateNote(_ context.Context, noteID, userID int, upd NoteUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[noteID]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	if upd.Slug != nil {
		n.Slug = *upd.Slug
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	n.UpdatedAt = time.Now()
	m.notes[noteID] = n
	return nil
}

func (m *Memory) DeleteNote(_ context.Context, noteID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[noteID]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	delete(m.notes, noteID)
	return nil
}
