package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SaveFinding inserts a finding row as-is (used by seeding; the analyzer goes
// through UpsertFinding).
func (s *Store) SaveFinding(f *AnalyzerFinding) error {
	_, err := s.db.Exec(`
		INSERT INTO analyzer_findings (id, user_id, type, title, message, severity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.UserID, f.Type, f.Title, f.Message, f.Severity, f.CreatedAt)
	return err
}

// UpsertFinding enforces the at-most-one-finding-per-day invariant: if a
// finding with the same (user, type, title) exists within the window before
// now, its message, severity, and timestamp are refreshed in place; otherwise
// a new row is created. Returns the live finding either way.
func (s *Store) UpsertFinding(userID, findingType, title, message string, severity int, now time.Time, window time.Duration) (*AnalyzerFinding, error) {
	existing, err := s.findRecentFinding(userID, findingType, title, now.Add(-window))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if existing != nil {
		existing.Message = message
		existing.Severity = severity
		existing.CreatedAt = now
		_, err := s.db.Exec(`
			UPDATE analyzer_findings SET message = ?, severity = ?, created_at = ? WHERE id = ?
		`, message, severity, now, existing.ID)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	f := &AnalyzerFinding{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      findingType,
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
	}
	if err := s.SaveFinding(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) findRecentFinding(userID, findingType, title string, since time.Time) (*AnalyzerFinding, error) {
	var f AnalyzerFinding
	err := s.db.QueryRow(`
		SELECT id, user_id, type, title, message, severity, created_at
		FROM analyzer_findings
		WHERE user_id = ? AND type = ? AND title = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, findingType, title, since).Scan(
		&f.ID, &f.UserID, &f.Type, &f.Title, &f.Message, &f.Severity, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Findings returns all findings for a user, newest first.
func (s *Store) Findings(userID string) ([]AnalyzerFinding, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, type, title, message, severity, created_at
		FROM analyzer_findings
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []AnalyzerFinding
	for rows.Next() {
		var f AnalyzerFinding
		if err := rows.Scan(&f.ID, &f.UserID, &f.Type, &f.Title, &f.Message, &f.Severity, &f.CreatedAt); err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// DeleteFindings removes all findings for a user.
func (s *Store) DeleteFindings(userID string) error {
	_, err := s.db.Exec(`DELETE FROM analyzer_findings WHERE user_id = ?`, userID)
	return err
}
