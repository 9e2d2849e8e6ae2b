package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateUser inserts a user and seeds the default categories in one
// transaction. A taken username returns ErrUserExists.
func (db *DB) CreateUser(username, email, passwordHash string) (*User, error) {
	now := time.Now().UTC()

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO users (username, password_hash, email, created_at) VALUES (?, ?, ?, ?)",
		username, passwordHash, email, now.Format(time.RFC3339),
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%q: %w", username, ErrUserExists)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, c := range DefaultCategories {
		if _, err := tx.Exec(
			"INSERT INTO categories (user_id, name, color, icon) VALUES (?, ?, ?, ?)",
			id, c.Name, c.Color, c.Icon,
		); err != nil {
			return nil, fmt.Errorf("seed category %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return db.GetUser(id)
}

// GetUser returns a user by ID.
func (db *DB) GetUser(id int64) (*User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, email, timezone, created_at FROM users WHERE id = ?", id,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return u, nil
}

// UserByName returns a user by username.
func (db *DB) UserByName(username string) (*User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, email, timezone, created_at FROM users WHERE username = ?", username,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return u, nil
}

// ListUsers returns all users ordered by username.
func (db *DB) ListUsers() ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, password_hash, email, timezone, created_at FROM users ORDER BY username",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// ListCategories returns the categories for a user ordered by ID.
func (db *DB) ListCategories(userID int64) ([]Category, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, name, color, icon FROM categories WHERE user_id = ? ORDER BY id", userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Timezone, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}
