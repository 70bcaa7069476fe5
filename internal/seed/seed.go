// Package seed resets the demo user's data and inserts a sample dataset for
// local development.
package seed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"neuraladapt/internal/planner"
	"neuraladapt/internal/store"
)

// Apply wipes the demo user's records and inserts the sample dataset,
// including a generated workout-plan artifact in artifactDir.
func Apply(st *store.Store, artifactDir string) (*store.User, error) {
	user, err := st.EnsureDemoUser()
	if err != nil {
		return nil, err
	}

	for _, del := range []func(string) error{
		st.DeleteFindings,
		st.DeleteCalendarItems,
		st.DeleteWorkoutLogs,
		st.DeleteJournalEntries,
		st.DeleteWorkoutPlans,
	} {
		if err := del(user.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()

	if err := st.SaveFeatureSelection(&store.FeatureSelection{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Calendar:  true,
		Journal:   true,
		AIWorkout: true,
		Sleep:     false,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := seedJournal(st, user.ID, now); err != nil {
		return nil, err
	}
	if err := seedActivity(st, user.ID, now); err != nil {
		return nil, err
	}
	if err := seedFindings(st, user.ID, now); err != nil {
		return nil, err
	}
	if err := seedPlan(st, user.ID, now, artifactDir); err != nil {
		return nil, err
	}

	return user, nil
}

func seedJournal(st *store.Store, userID string, now time.Time) error {
	entries := []struct {
		content   string
		sentiment float64
		tag       string
		createdAt time.Time
	}{
		{
			content:   "Felt focused through most meetings. Afternoon energy dip but recovered after a walk.",
			sentiment: 0.35,
			tag:       "Positive",
			createdAt: now.AddDate(0, 0, -2),
		},
		{
			content:   "Woke up groggy. Training session felt heavier than usual, but still finished all sets.",
			sentiment: -0.1,
			tag:       "Neutral",
			createdAt: now.AddDate(0, 0, -1),
		},
		{
			content:   "Great momentum today—cleared inbox, powered through workout, and had quality time with friends.",
			sentiment: 0.6,
			tag:       "Positive",
			createdAt: now,
		},
	}

	for _, e := range entries {
		sentiment := e.sentiment
		tag := e.tag
		if err := st.SaveJournalEntry(&store.JournalEntry{
			ID:            uuid.NewString(),
			UserID:        userID,
			Content:       e.content,
			Sentiment:     &sentiment,
			PositivityTag: &tag,
			CreatedAt:     e.createdAt,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedActivity(st *store.Store, userID string, now time.Time) error {
	workouts := []store.WorkoutLog{
		{Title: "Lower Body Strength", ScheduledDate: now.AddDate(0, 0, -1), Completed: true, Notes: "Back squats moved well at RPE 7."},
		{Title: "Active Recovery Flow", ScheduledDate: now, Completed: false, Notes: "Plan: mobility + light conditioning"},
		{Title: "Upper Power Session", ScheduledDate: now.AddDate(0, 0, 1), Completed: false, Notes: "Focus on explosive pressing and pull-ups"},
	}
	for _, w := range workouts {
		w.ID = uuid.NewString()
		w.UserID = userID
		if err := st.SaveWorkoutLog(&w); err != nil {
			return err
		}
	}

	items := []store.CalendarItem{
		{Title: "Therapy check-in", DueDate: now.AddDate(0, 0, 2), Completed: false},
		{Title: "Project milestone review", DueDate: now.AddDate(0, 0, 1), Completed: false},
		{Title: "Meal prep for the week", DueDate: now.AddDate(0, 0, -1), Completed: true},
	}
	for _, c := range items {
		c.ID = uuid.NewString()
		c.UserID = userID
		if err := st.SaveCalendarItem(&c); err != nil {
			return err
		}
	}
	return nil
}

func seedFindings(st *store.Store, userID string, now time.Time) error {
	findings := []store.AnalyzerFinding{
		{
			Type:      store.FindingReinforcement,
			Title:     "Momentum Building",
			Message:   "Consistent journaling and on-track workouts indicate strong resilience. Keep stacking these wins!",
			Severity:  2,
			CreatedAt: now.AddDate(0, 0, -1),
		},
		{
			Type:      store.FindingAlert,
			Title:     "Energy Dip Detected",
			Message:   "Two journal entries mention fatigue and one workout is pending. Consider recovery strategies and scheduling a lighter day.",
			Severity:  3,
			CreatedAt: now,
		},
	}
	for _, f := range findings {
		f.ID = uuid.NewString()
		f.UserID = userID
		if err := st.SaveFinding(&f); err != nil {
			return err
		}
	}
	return nil
}

func seedPlan(st *store.Store, userID string, now time.Time, artifactDir string) error {
	plan := planner.Plan{
		ProgramName: "Adaptation Accelerator",
		Type:        "Hybrid Strength",
		Duration:    "4 weeks",
		Overview:    "Blend foundational strength work with mobility and conditioning to reinforce adaptability across stressful weeks.",
		Days: []planner.PlanDay{
			{
				Day:   "Day 1 - Lower Foundation",
				Focus: "Strength + Stability",
				Exercises: []planner.Exercise{
					{Name: "Back Squat", Sets: 4, Reps: "5", Rest: 150, Notes: "RPE 7. Focus on bracing."},
					{Name: "Romanian Deadlift", Sets: 3, Reps: "8", Rest: 120, Notes: "Tempo 3-1-1."},
					{Name: "Split Squat", Sets: 3, Reps: "10/leg", Rest: 90, Notes: "Keep torso tall."},
					{Name: "Hanging Knee Raise", Sets: 3, Reps: "12", Rest: 60, Notes: "Control swing."},
				},
			},
			{
				Day:   "Day 2 - Neural Recharge",
				Focus: "Mobility + Aerobic",
				Exercises: []planner.Exercise{
					{Name: "Couch Stretch", Sets: 3, Reps: "45 sec/side", Rest: 30, Notes: "Breathe deep."},
					{Name: "Thoracic Spine Opener", Sets: 3, Reps: "12", Rest: 30, Notes: "Slow controlled reps."},
					{Name: "Zone 2 Bike", Sets: 1, Reps: "20 min", Rest: 0, Notes: "Maintain nasal breathing."},
				},
			},
			{
				Day:   "Day 3 - Upper Resilience",
				Focus: "Strength + Power",
				Exercises: []planner.Exercise{
					{Name: "Bench Press", Sets: 4, Reps: "5", Rest: 150, Notes: "Cluster sets optional."},
					{Name: "Weighted Pull-Up", Sets: 4, Reps: "6", Rest: 120, Notes: "Full range of motion."},
					{Name: "Landmine Press", Sets: 3, Reps: "8/side", Rest: 90, Notes: "Drive through hips."},
					{Name: "Tall Kneeling Pallof Press", Sets: 3, Reps: "12", Rest: 60, Notes: "Anti-rotation emphasis."},
				},
			},
		},
	}

	artifactID := fmt.Sprintf("%d-adaptation-accelerator", now.UnixMilli())
	artifactPath, err := planner.WriteArtifact(plan, artifactDir, artifactID)
	if err != nil {
		return err
	}

	request := planner.GenerationInput{
		ProgramName:          "Adaptation Accelerator",
		TrainingFocus:        "General Fitness",
		ProgramType:          "Mesocycle",
		SessionLengthMinutes: 60,
		ExperienceLevel:      "Intermediate",
		StartDate:            now.Format("2006-01-02"),
		Goals:                "Maintain resilience during demanding work sprints",
		Equipment:            "Commercial gym setup",
		TrainingFrequency:    4,
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return err
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return err
	}

	return st.SaveWorkoutPlan(&store.WorkoutPlanRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		RequestJSON:  string(requestJSON),
		PlanJSON:     string(planJSON),
		ArtifactPath: artifactPath,
		CreatedAt:    now,
	})
}
