package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"cloudnote/models"
)

// duplicate entry for a unique key
const mysqlErrDupEntry = 1062

type MySQL struct {
	db *sql.DB
}

// OpenMySQL connects to the database and creates the schema if it does not
// exist yet. The DSN must include parseTime=true and clientFoundRows=true so
// timestamps scan into time.Time and no-op updates still count as matched.
func OpenMySQL(dsn string) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	m := &MySQL{db: db}
	if err := m.migrate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MySQL) migrate() error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		gender CHAR(1) NOT NULL,
		birth_date DATE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	notesTable := `
	CREATE TABLE IF NOT EXISTS notes (
		id INT AUTO_INCREMENT PRIMARY KEY,
		slug VARCHAR(512) UNIQUE NOT NULL,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		user_id INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err := m.db.Exec(usersTable); err != nil {
		return err
	}
	if _, err := m.db.Exec(notesTable); err != nil {
		return err
	}
	return nil
}

func (m *MySQL) Close() error {
	return m.db.Close()
}

func (m *MySQL) CreateUser(ctx context.Context, u models.User) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, gender, birth_date, email, password_hash) VALUES (?, ?, ?, ?, ?, ?)",
		u.FirstName, u.LastName, u.Gender, u.BirthDate, u.Email, u.PasswordHash)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry {
		return ErrDuplicateEmail
	}
	return err
}

func (m *MySQL) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := m.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, gender, birth_date, email, password_hash, created_at FROM users WHERE email = ?",
		email).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Gender, &u.BirthDate, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (m *MySQL) CreateNote(ctx context.Context, n models.Note) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO notes (slug, title, content, user_id) VALUES (?, ?, ?, ?)",
		n.Slug, n.Title, n.Content, n.UserID)
	return err
}

func (m *MySQL) NoteBySlug(ctx context.Context, slug string) (models.Note, error) {
	var n models.Note
	err := m.db.QueryRowContext(ctx,
		"SELECT id, slug, title, content, user_id, created_at, updated_at FROM notes WHERE slug = ?",
		slug).Scan(&n.ID, &n.Slug, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNotFound
	}
	return n, err
}

func (m *MySQL) NotesByUser(ctx context.Context, userID int) ([]models.Note, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT id, slug, title, content, user_id, created_at, updated_at FROM notes WHERE user_id = ? ORDER BY updated_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Slug, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (m *MySQL) UpdateNote(ctx context.Context, noteID, userID int, upd NoteUpdate) error {
	var sets []string
	var args []any
	if upd.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *upd.Slug)
	}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, noteID, userID)

	res, err := m.db.ExecContext(ctx,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MySQL) DeleteNote(ctx context.Context, noteID, userID int) error {
	res, err := m.db.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?", noteID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
