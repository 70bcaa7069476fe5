package store

// SaveWorkoutLog inserts a workout log.
func (s *Store) SaveWorkoutLog(w *WorkoutLog) error {
	_, err := s.db.Exec(`
		INSERT INTO workout_logs (id, user_id, title, scheduled_date, completed, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID, w.UserID, w.Title, w.ScheduledDate, w.Completed, w.Notes)
	return err
}

// WorkoutLogs returns all workout logs for a user, earliest scheduled first.
// The overdue check needs to see old pending sessions regardless of age, so
// this is deliberately not time-windowed.
func (s *Store) WorkoutLogs(userID string) ([]WorkoutLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, scheduled_date, completed, notes
		FROM workout_logs
		WHERE user_id = ?
		ORDER BY scheduled_date ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []WorkoutLog
	for rows.Next() {
		var w WorkoutLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.ScheduledDate, &w.Completed, &w.Notes); err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// DeleteWorkoutLogs removes all workout logs for a user.
func (s *Store) DeleteWorkoutLogs(userID string) error {
	_, err := s.db.Exec(`DELETE FROM workout_logs WHERE user_id = ?`, userID)
	return err
}

// SaveCalendarItem inserts a calendar item.
func (s *Store) SaveCalendarItem(c *CalendarItem) error {
	_, err := s.db.Exec(`
		INSERT INTO calendar_items (id, user_id, title, due_date, completed)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Title, c.DueDate, c.Completed)
	return err
}

// CalendarItems returns all calendar items for a user, earliest due first.
// Like WorkoutLogs this is unbounded on purpose.
func (s *Store) CalendarItems(userID string) ([]CalendarItem, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, due_date, completed
		FROM calendar_items
		WHERE user_id = ?
		ORDER BY due_date ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CalendarItem
	for rows.Next() {
		var c CalendarItem
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.DueDate, &c.Completed); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// DeleteCalendarItems removes all calendar items for a user.
func (s *Store) DeleteCalendarItems(userID string) error {
	_, err := s.db.Exec(`DELETE FROM calendar_items WHERE user_id = ?`, userID)
	return err
}
