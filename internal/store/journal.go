package store

import (
	"database/sql"
	"time"
)

// SaveJournalEntry inserts a journal entry.
func (s *Store) SaveJournalEntry(e *JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_entries (id, user_id, content, sentiment, positivity_tag, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Content, e.Sentiment, e.PositivityTag, e.CreatedAt)
	return err
}

// JournalEntriesSince returns the user's journal entries created at or after
// the cutoff, oldest first. A limit of 0 means no limit.
func (s *Store) JournalEntriesSince(userID string, since time.Time, limit int) ([]JournalEntry, error) {
	query := `
		SELECT id, user_id, content, sentiment, positivity_tag, created_at
		FROM journal_entries
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC
	`
	args := []any{userID, since}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJournalEntries(rows)
}

// UpdateJournalScore writes the derived sentiment fields back onto an entry.
// Re-scoring an already scored entry simply overwrites (last write wins).
func (s *Store) UpdateJournalScore(entryID string, sentiment float64, positivityTag string) error {
	_, err := s.db.Exec(`
		UPDATE journal_entries SET sentiment = ?, positivity_tag = ? WHERE id = ?
	`, sentiment, positivityTag, entryID)
	return err
}

// DeleteJournalEntries removes all journal entries for a user.
func (s *Store) DeleteJournalEntries(userID string) error {
	_, err := s.db.Exec(`DELETE FROM journal_entries WHERE user_id = ?`, userID)
	return err
}

func scanJournalEntries(rows *sql.Rows) ([]JournalEntry, error) {
	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Sentiment, &e.PositivityTag, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
