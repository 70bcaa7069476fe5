package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DemoEmail identifies the single fixed demo user this deployment runs as.
const DemoEmail = "demo@neuraladapt.local"

// UserByEmail returns the user with the given email, or sql.ErrNoRows.
func (s *Store) UserByEmail(email string) (*User, error) {
	var u User
	err := s.db.QueryRow(`
		SELECT id, email, created_at FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureDemoUser returns the demo user, creating it (with an empty feature
// selection) on first use.
func (s *Store) EnsureDemoUser() (*User, error) {
	u, err := s.UserByEmail(DemoEmail)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.NewString(),
		Email:     DemoEmail,
		CreatedAt: now,
	}
	if _, err := s.db.Exec(`
		INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)
	`, user.ID, user.Email, user.CreatedAt); err != nil {
		return nil, err
	}

	if err := s.SaveFeatureSelection(&FeatureSelection{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Users returns all users, oldest first.
func (s *Store) Users() ([]User, error) {
	rows, err := s.db.Query(`SELECT id, email, created_at FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveFeatureSelection records an onboarding feature selection.
func (s *Store) SaveFeatureSelection(fs *FeatureSelection) error {
	_, err := s.db.Exec(`
		INSERT INTO feature_selections (id, user_id, calendar, journal, ai_workout, sleep, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, fs.ID, fs.UserID, fs.Calendar, fs.Journal, fs.AIWorkout, fs.Sleep, fs.CreatedAt)
	return err
}

// LatestFeatureSelection returns the most recent selection for the user, or
// sql.ErrNoRows when onboarding never completed.
func (s *Store) LatestFeatureSelection(userID string) (*FeatureSelection, error) {
	var fs FeatureSelection
	err := s.db.QueryRow(`
		SELECT id, user_id, calendar, journal, ai_workout, sleep, created_at
		FROM feature_selections
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&fs.ID, &fs.UserID, &fs.Calendar, &fs.Journal, &fs.AIWorkout, &fs.Sleep, &fs.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &fs, nil
}
