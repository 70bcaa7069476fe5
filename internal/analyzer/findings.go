package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

// Finding titles are part of the dedup key: repeated runs within a day
// refresh the same row instead of creating another one.
const (
	AlertTitle         = "Early Strain Detected"
	ReinforcementTitle = "Progress Momentum"
)

// Decision is the outcome of one rule evaluation: at most one finding per
// run.
type Decision struct {
	Type     string
	Title    string
	Message  string
	Severity int
}

// Decide evaluates the signal vector and returns the finding to persist, or
// nil when neither rule fires. The alert rule is evaluated first; the
// reinforcement rule is only considered when the alert did not trigger.
func Decide(sig Signals, now time.Time) *Decision {
	if d := decideAlert(sig, now); d != nil {
		return d
	}
	return decideReinforcement(sig)
}

func decideAlert(sig Signals, now time.Time) *Decision {
	triggered := sig.SentimentAverage < -0.2 ||
		sig.NegativeEntries >= 2 ||
		len(sig.OverdueWorkouts) >= 2 ||
		len(sig.UrgentEntries) > 0 ||
		len(sig.IntenseToneEntries) >= 2
	if !triggered {
		return nil
	}

	var parts []string
	if sig.SentimentAverage < -0.2 {
		parts = append(parts, fmt.Sprintf("Mood trending down with average sentiment %.2f across last 7 days.", sig.SentimentAverage))
	}
	if sig.NegativeEntries >= 2 {
		parts = append(parts, fmt.Sprintf("%d journal entries flagged as negative in the last week.", sig.NegativeEntries))
	}
	if len(sig.OverdueWorkouts) >= 2 {
		next := humanize.RelTime(sig.OverdueWorkouts[0].ScheduledDate, now, "ago", "from now")
		parts = append(parts, fmt.Sprintf("%d workouts overdue. Next session was %s.", len(sig.OverdueWorkouts), next))
	}
	// Overdue tasks alone never trigger the alert; three or more only add
	// color to one that already fired.
	if len(sig.OverdueTasks) >= 3 {
		parts = append(parts, fmt.Sprintf("%d tasks are behind schedule.", len(sig.OverdueTasks)))
	}
	if len(sig.UrgentEntries) > 0 {
		parts = append(parts, fmt.Sprintf("%d journal entries flagged high urgency by tone analysis.", len(sig.UrgentEntries)))
		if summary := sig.UrgentEntries[0].Summary; summary != "" {
			parts = append(parts, fmt.Sprintf("Most urgent note: %q", summary))
		}
	}
	if len(sig.UniqueIntenseTones) > 0 {
		parts = append(parts, fmt.Sprintf("Intense emotional tones detected (%s).", strings.Join(sig.UniqueIntenseTones, ", ")))
	}
	if len(sig.TopStressors) > 0 {
		parts = append(parts, fmt.Sprintf("Recurring stressors: %s.", strings.Join(sig.TopStressors, ", ")))
	}

	message := strings.Join(parts, " ")
	if message == "" {
		message = "Signals indicate mounting strain across multiple data sources."
	}

	severity := 2 + len(sig.OverdueWorkouts) + sig.NegativeEntries + len(sig.UrgentEntries)*2
	if len(sig.IntenseToneEntries) > 0 {
		severity++
	}
	if severity > 5 {
		severity = 5
	}

	return &Decision{
		Type:     store.FindingAlert,
		Title:    AlertTitle,
		Message:  message,
		Severity: severity,
	}
}

func decideReinforcement(sig Signals) *Decision {
	triggered := sig.SentimentAverage > 0.25 &&
		len(sig.OverdueWorkouts) == 0 &&
		len(sig.OverdueTasks) <= 1 &&
		len(sig.UrgentEntries) == 0 &&
		sig.NegativeEntries == 0
	if !triggered {
		return nil
	}

	var parts []string
	// The momentum sentence uses a looser threshold than the trigger above;
	// the asymmetry is deliberate.
	if sig.SentimentAverage > 0.2 {
		parts = append(parts, fmt.Sprintf("Great emotional momentum with average sentiment %.2f.", sig.SentimentAverage))
	}
	if len(sig.OverdueWorkouts) == 0 && sig.WorkoutCount > 0 {
		parts = append(parts, "All scheduled workouts are on track—consistency unlocked.")
	}
	if sig.CalendarCount > 0 && len(sig.OverdueTasks) == 0 {
		parts = append(parts, "Calendar commitments are all current.")
	}
	if len(sig.PositiveToneEntries) > 0 {
		parts = append(parts, fmt.Sprintf("%d journal entries reflected optimistic or grounded tone.", len(sig.PositiveToneEntries)))
	}
	if len(sig.Insights) > 0 && allLowUrgency(sig.Insights) {
		parts = append(parts, "Journal urgency remained low across recent reflections.")
	}
	if len(sig.TopStressors) == 0 {
		parts = append(parts, "No recurring stressors detected in recent journal entries.")
	}

	message := strings.Join(parts, " ")
	if message == "" {
		message = "Positive adherence detected—keep reinforcing these routines!"
	}

	return &Decision{
		Type:     store.FindingReinforcement,
		Title:    ReinforcementTitle,
		Message:  message,
		Severity: 2,
	}
}

func allLowUrgency(insights []EntryAnalysis) bool {
	for _, insight := range insights {
		if insight.Urgency != classifier.UrgencyNone && insight.Urgency != classifier.UrgencyLow {
			return false
		}
	}
	return true
}
