// Package planner generates structured workout programs through the same
// classifier client the analyzer uses, and exports each program as a
// spreadsheet artifact.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

// StructuredClient is the slice of the classifier client the planner needs.
type StructuredClient interface {
	CreateStructured(ctx context.Context, system, user string, format classifier.SchemaFormat) (string, error)
}

// PowerliftingStats carries optional one-rep maxes for powerlifting-focused
// programs.
type PowerliftingStats struct {
	SquatMax    string `json:"squatMax,omitempty"`
	BenchMax    string `json:"benchMax,omitempty"`
	DeadliftMax string `json:"deadliftMax,omitempty"`
}

// GenerationInput describes the requested program.
type GenerationInput struct {
	ProgramName          string             `json:"programName"`
	TrainingFocus        string             `json:"trainingFocus"`
	ProgramType          string             `json:"programType"`
	SessionLengthMinutes int                `json:"sessionLengthMinutes"`
	ExperienceLevel      string             `json:"experienceLevel"`
	StartDate            string             `json:"startDate"`
	Goals                string             `json:"goals"`
	Injuries             string             `json:"injuries,omitempty"`
	Equipment            string             `json:"equipment"`
	TrainingFrequency    int                `json:"trainingFrequency"`
	PowerliftingStats    *PowerliftingStats `json:"powerliftingStats,omitempty"`
}

// Validate checks the request the way the dashboard form does.
func (in GenerationInput) Validate() error {
	switch {
	case strings.TrimSpace(in.ProgramName) == "":
		return fmt.Errorf("program name is required")
	case in.SessionLengthMinutes <= 0:
		return fmt.Errorf("session length must be positive")
	case in.TrainingFrequency <= 0:
		return fmt.Errorf("training frequency must be positive")
	case strings.TrimSpace(in.Goals) == "":
		return fmt.Errorf("goals are required")
	case strings.TrimSpace(in.Equipment) == "":
		return fmt.Errorf("equipment is required")
	}
	return nil
}

// Plan is a generated workout program.
type Plan struct {
	ProgramName string    `json:"programName"`
	Type        string    `json:"type"`
	Duration    string    `json:"duration"`
	Overview    string    `json:"overview"`
	Days        []PlanDay `json:"days"`
}

// PlanDay is one training day within a program.
type PlanDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a single prescribed movement.
type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Rest  int    `json:"rest"`
	Notes string `json:"notes"`
}

// Result bundles the decoded plan with its persisted record.
type Result struct {
	Plan         Plan
	ArtifactPath string
	Record       *store.WorkoutPlanRecord
}

const planSystemPrompt = "You are an elite strength and wellness coach generating periodized training plans."

var planFormat = classifier.SchemaFormat{
	Name: "workout_plan_schema",
	Schema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"programName": {"type": "string"},
			"type": {"type": "string"},
			"duration": {"type": "string"},
			"overview": {"type": "string"},
			"days": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"day": {"type": "string"},
						"focus": {"type": "string"},
						"exercises": {
							"type": "array",
							"items": {
								"type": "object",
								"properties": {
									"name": {"type": "string"},
									"sets": {"type": "integer"},
									"reps": {"anyOf": [{"type": "string"}, {"type": "integer"}]},
									"rest": {"type": "integer"},
									"notes": {"type": "string"}
								},
								"required": ["name", "sets", "reps", "rest", "notes"],
								"additionalProperties": false
							}
						}
					},
					"required": ["day", "focus", "exercises"],
					"additionalProperties": false
				}
			}
		},
		"required": ["programName", "type", "duration", "overview", "days"],
		"additionalProperties": false
	}`),
	Strict: true,
}

// Planner generates and records workout programs.
type Planner struct {
	store       *store.Store
	client      StructuredClient
	logger      *zap.Logger
	artifactDir string
	now         func() time.Time
}

// New creates a planner writing artifacts into artifactDir.
func New(st *store.Store, client StructuredClient, logger *zap.Logger, artifactDir string) *Planner {
	return &Planner{
		store:       st,
		client:      client,
		logger:      logger,
		artifactDir: artifactDir,
		now:         time.Now,
	}
}

// Generate produces a program for the request, writes the xlsx artifact, and
// stores the plan record.
func (p *Planner) Generate(ctx context.Context, userID string, input GenerationInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := p.now()

	// Rough cents placeholder prior to actual billing details.
	if err := p.store.AddUsage(now, 2); err != nil {
		return nil, err
	}

	text, err := p.client.CreateStructured(ctx, planSystemPrompt, buildPlanPrompt(input), planFormat)
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	plan, err := DecodePlan([]byte(text))
	if err != nil {
		return nil, err
	}

	name := plan.ProgramName
	if name == "" {
		name = input.ProgramName
	}
	artifactID := fmt.Sprintf("%d-%s", now.UnixMilli(), slugify(name))

	artifactPath, err := WriteArtifact(plan, p.artifactDir, artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to write plan artifact: %w", err)
	}

	requestJSON, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	record := &store.WorkoutPlanRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		RequestJSON:  string(requestJSON),
		PlanJSON:     string(planJSON),
		ArtifactPath: artifactPath,
		CreatedAt:    now,
	}
	if err := p.store.SaveWorkoutPlan(record); err != nil {
		return nil, err
	}

	p.logger.Info("workout plan generated",
		zap.String("user_id", userID),
		zap.String("program", plan.ProgramName),
		zap.String("artifact", artifactPath))

	return &Result{Plan: plan, ArtifactPath: artifactPath, Record: record}, nil
}

// ListPlans returns the user's ten most recent plan records.
func (p *Planner) ListPlans(userID string) ([]store.WorkoutPlanRecord, error) {
	return p.store.WorkoutPlans(userID, 10)
}

func buildPlanPrompt(in GenerationInput) string {
	injuries := in.Injuries
	if injuries == "" {
		injuries = "None"
	}
	stats := "N/A"
	if in.PowerliftingStats != nil {
		if raw, err := json.Marshal(in.PowerliftingStats); err == nil {
			stats = string(raw)
		}
	}

	var sb strings.Builder
	sb.WriteString("Generate a structured workout program in JSON format.\n")
	sb.WriteString("User context:\n")
	sb.WriteString(fmt.Sprintf("- Program Type: %s\n", in.ProgramType))
	sb.WriteString(fmt.Sprintf("- Training Focus: %s\n", in.TrainingFocus))
	sb.WriteString(fmt.Sprintf("- Session Length: %d minutes\n", in.SessionLengthMinutes))
	sb.WriteString(fmt.Sprintf("- Goals: %s\n", in.Goals))
	sb.WriteString(fmt.Sprintf("- Equipment: %s\n", in.Equipment))
	sb.WriteString(fmt.Sprintf("- Training Frequency: %d sessions/week\n", in.TrainingFrequency))
	sb.WriteString(fmt.Sprintf("- Injuries: %s\n", injuries))
	sb.WriteString(fmt.Sprintf("- Experience: %s\n", in.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("- Start Date: %s\n", in.StartDate))
	sb.WriteString(fmt.Sprintf("- Powerlifting Stats: %s\n", stats))
	sb.WriteString("\nPlease emphasize actionable exercise selections and weekly progression cues when relevant.")
	return sb.String()
}

// DecodePlan parses a plan payload with per-field defaults, matching the
// tolerant decoding the sentiment payload gets. Reps may arrive as a string
// or a number and is normalized to a string.
func DecodePlan(data []byte) (Plan, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan payload: %w", err)
	}

	plan := Plan{
		ProgramName: stringField(raw, "programName"),
		Type:        stringField(raw, "type"),
		Duration:    stringField(raw, "duration"),
		Overview:    stringField(raw, "overview"),
	}

	days, _ := raw["days"].([]any)
	for _, d := range days {
		dayMap, ok := d.(map[string]any)
		if !ok {
			continue
		}
		day := PlanDay{
			Day:   stringField(dayMap, "day"),
			Focus: stringField(dayMap, "focus"),
		}
		exercises, _ := dayMap["exercises"].([]any)
		for _, e := range exercises {
			exMap, ok := e.(map[string]any)
			if !ok {
				continue
			}
			day.Exercises = append(day.Exercises, Exercise{
				Name:  stringField(exMap, "name"),
				Sets:  intField(exMap, "sets"),
				Reps:  repsField(exMap["reps"]),
				Rest:  intField(exMap, "rest"),
				Notes: stringField(exMap, "notes"),
			})
		}
		plan.Days = append(plan.Days, day)
	}

	return plan, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func repsField(v any) string {
	switch r := v.(type) {
	case string:
		return r
	case float64:
		return strconv.Itoa(int(r))
	default:
		return ""
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(input string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(input), "-")
	s = strings.Trim(s, "-")
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}
