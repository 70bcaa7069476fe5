package store

import "time"

// Finding types emitted by the analyzer.
const (
	FindingAlert         = "ALERT"
	FindingReinforcement = "REINFORCEMENT"
)

// User is the owner all other records are scoped to. The deployment runs with
// a single demo identity.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FeatureSelection records which dashboard modules the user enabled during
// onboarding.
type FeatureSelection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Calendar  bool      `json:"calendar"`
	Journal   bool      `json:"journal"`
	AIWorkout bool      `json:"ai_workout"`
	Sleep     bool      `json:"sleep"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalEntry is a free-text journal record. Sentiment and PositivityTag are
// nil until the analyzer scores the entry.
type JournalEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content"`
	Sentiment     *float64  `json:"sentiment"`
	PositivityTag *string   `json:"positivity_tag"`
	CreatedAt     time.Time `json:"created_at"`
}

// WorkoutLog is a scheduled or completed training session.
type WorkoutLog struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Completed     bool      `json:"completed"`
	Notes         string    `json:"notes"`
}

// Overdue reports whether the workout was scheduled in the past and never
// completed.
func (w WorkoutLog) Overdue(now time.Time) bool {
	return !w.Completed && w.ScheduledDate.Before(now)
}

// CalendarItem is a dated task on the user's calendar.
type CalendarItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"due_date"`
	Completed bool      `json:"completed"`
}

// Overdue reports whether the item is incomplete and due today or earlier.
// The comparison is at calendar-day granularity, so an item due later today
// already counts.
func (c CalendarItem) Overdue(now time.Time) bool {
	if c.Completed {
		return false
	}
	y1, m1, d1 := c.DueDate.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	due := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())
	return !due.After(today)
}

// AnalyzerFinding is a persisted alert or reinforcement shown on the
// dashboard feed.
type AnalyzerFinding struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  int       `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutPlanRecord stores a generated workout program alongside the request
// that produced it and the path of the exported spreadsheet.
type WorkoutPlanRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RequestJSON  string    `json:"request_json"`
	PlanJSON     string    `json:"plan_json"`
	ArtifactPath string    `json:"artifact_path"`
	CreatedAt    time.Time `json:"created_at"`
}
