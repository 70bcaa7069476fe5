package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

func TestDecideAlertPath(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sig := Signals{
		SentimentAverage: -0.3,
		NegativeEntries:  3,
	}

	d := Decide(sig, now)
	require.NotNil(t, d)

	assert.Equal(t, store.FindingAlert, d.Type)
	assert.Equal(t, AlertTitle, d.Title)
	assert.Contains(t, d.Message, "-0.30")
	assert.Contains(t, d.Message, "3 journal entries flagged as negative")
	// 2 + 0 overdue + 3 negative + 0 urgent + 0 intense, clamped at 5
	assert.Equal(t, 5, d.Severity)
}

func TestDecideAlertOverdueWorkouts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sig := Signals{
		OverdueWorkouts: []store.WorkoutLog{
			{Title: "Push Day", ScheduledDate: now.Add(-72 * time.Hour)},
			{Title: "Pull Day", ScheduledDate: now.Add(-24 * time.Hour)},
		},
	}

	d := Decide(sig, now)
	require.NotNil(t, d)

	assert.Equal(t, store.FindingAlert, d.Type)
	assert.Contains(t, d.Message, "2 workouts overdue.")
	assert.Contains(t, d.Message, "ago")
	assert.Equal(t, 4, d.Severity)
}

func TestDecideAlertUrgentSummaryQuoted(t *testing.T) {
	now := time.Now()
	sig := Signals{
		UrgentEntries: []EntryAnalysis{
			insight(classifier.UrgencyCritical, classifier.LabelNegative, nil, nil),
		},
	}
	sig.UrgentEntries[0].Summary = "Feeling close to burnout."

	d := Decide(sig, now)
	require.NotNil(t, d)

	assert.Contains(t, d.Message, "1 journal entries flagged high urgency")
	assert.Contains(t, d.Message, `"Feeling close to burnout."`)
	// 2 + 1 urgent * 2
	assert.Equal(t, 4, d.Severity)
}

func TestOverdueTasksAloneNeverTrigger(t *testing.T) {
	sig := Signals{
		OverdueTasks: []store.CalendarItem{{}, {}, {}, {}, {}},
	}

	assert.Nil(t, Decide(sig, time.Now()))
}

func TestOverdueTasksAddColorToAlert(t *testing.T) {
	sig := Signals{
		NegativeEntries: 2,
		OverdueTasks:    []store.CalendarItem{{}, {}, {}},
	}

	d := Decide(sig, time.Now())
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "3 tasks are behind schedule.")
}

func TestAlertSeverityBounds(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want int
	}{
		{
			name: "floor",
			sig:  Signals{SentimentAverage: -0.21},
			want: 2,
		},
		{
			name: "ceiling",
			sig: Signals{
				NegativeEntries: 10,
				UrgentEntries: []EntryAnalysis{
					insight(classifier.UrgencyHigh, classifier.LabelNegative, nil, nil),
					insight(classifier.UrgencyHigh, classifier.LabelNegative, nil, nil),
				},
				IntenseToneEntries: []EntryAnalysis{
					insight(classifier.UrgencyHigh, classifier.LabelNegative, []string{"anxious"}, nil),
				},
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.sig, time.Now())
			require.NotNil(t, d)
			assert.Equal(t, store.FindingAlert, d.Type)
			assert.GreaterOrEqual(t, d.Severity, 2)
			assert.LessOrEqual(t, d.Severity, 5)
			assert.Equal(t, tt.want, d.Severity)
		})
	}
}

func TestDecideReinforcementPath(t *testing.T) {
	sig := Signals{
		SentimentAverage: 0.4,
		WorkoutCount:     2,
		CalendarCount:    1,
		Insights: []EntryAnalysis{
			insight(classifier.UrgencyLow, classifier.LabelPositive, nil, nil),
		},
		PositiveToneEntries: []EntryAnalysis{
			insight(classifier.UrgencyLow, classifier.LabelPositive, nil, nil),
		},
	}

	d := Decide(sig, time.Now())
	require.NotNil(t, d)

	assert.Equal(t, store.FindingReinforcement, d.Type)
	assert.Equal(t, ReinforcementTitle, d.Title)
	assert.Equal(t, 2, d.Severity)
	assert.Contains(t, d.Message, "on track")
	assert.Contains(t, d.Message, "No recurring stressors detected")
	assert.Contains(t, d.Message, "urgency remained low")
}

func TestReinforcementRequiresAllConditions(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
	}{
		{"average too low", Signals{SentimentAverage: 0.25}},
		{"overdue workout", Signals{SentimentAverage: 0.4, OverdueWorkouts: []store.WorkoutLog{{}}}},
		{"too many overdue tasks", Signals{SentimentAverage: 0.4, OverdueTasks: []store.CalendarItem{{}, {}}}},
		{"negative entry", Signals{SentimentAverage: 0.4, NegativeEntries: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Decide(tt.sig, time.Now()))
		})
	}
}

func TestAlertAndReinforcementMutuallyExclusive(t *testing.T) {
	// Signals that satisfy the reinforcement conditions except that an urgent
	// entry also fires the alert: the alert wins and reinforcement is never
	// evaluated.
	sig := Signals{
		SentimentAverage: 0.4,
		UrgentEntries: []EntryAnalysis{
			insight(classifier.UrgencyHigh, classifier.LabelPositive, nil, nil),
		},
	}

	d := Decide(sig, time.Now())
	require.NotNil(t, d)
	assert.Equal(t, store.FindingAlert, d.Type)
}

func TestReinforcementMomentumAsymmetry(t *testing.T) {
	// The trigger needs > 0.25 but the momentum sentence only needs > 0.2, so
	// any triggering average includes the sentence.
	sig := Signals{SentimentAverage: 0.26}

	d := Decide(sig, time.Now())
	require.NotNil(t, d)
	assert.True(t, strings.Contains(d.Message, "Great emotional momentum with average sentiment 0.26."))
}
