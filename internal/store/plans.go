package store

// SaveWorkoutPlan stores a generated workout program record.
func (s *Store) SaveWorkoutPlan(p *WorkoutPlanRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO workout_plans (id, user_id, request_json, plan_json, artifact_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.RequestJSON, p.PlanJSON, p.ArtifactPath, p.CreatedAt)
	return err
}

// WorkoutPlans returns the user's most recent plans, newest first.
func (s *Store) WorkoutPlans(userID string, limit int) ([]WorkoutPlanRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, request_json, plan_json, artifact_path, created_at
		FROM workout_plans
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []WorkoutPlanRecord
	for rows.Next() {
		var p WorkoutPlanRecord
		if err := rows.Scan(&p.ID, &p.UserID, &p.RequestJSON, &p.PlanJSON, &p.ArtifactPath, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeleteWorkoutPlans removes all plan records for a user.
func (s *Store) DeleteWorkoutPlans(userID string) error {
	_, err := s.db.Exec(`DELETE FROM workout_plans WHERE user_id = ?`, userID)
	return err
}
