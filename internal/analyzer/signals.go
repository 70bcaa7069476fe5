package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

// EntryAnalysis pairs a journal entry with its classifier payload for one
// run. It lives only for the duration of the run; the persisted derivation is
// the sentiment and tag written back onto the entry.
type EntryAnalysis struct {
	EntryID string
	classifier.Sentiment
}

var (
	intenseTonePattern  = regexp.MustCompile(`(?i)(anxious|overwhelmed|angry|stressed|burned|panic|fear)`)
	positiveTonePattern = regexp.MustCompile(`(?i)(calm|grateful|motivated|confident|proud|energized)`)
)

// Signals is the aggregate vector the decision engine evaluates.
type Signals struct {
	SentimentAverage    float64
	NegativeEntries     int
	OverdueWorkouts     []store.WorkoutLog
	OverdueTasks        []store.CalendarItem
	UrgentEntries       []EntryAnalysis
	IntenseToneEntries  []EntryAnalysis
	PositiveToneEntries []EntryAnalysis
	TopStressors        []string
	UniqueIntenseTones  []string

	// Totals for message composition.
	WorkoutCount  int
	CalendarCount int
	Insights      []EntryAnalysis
}

// ComputeSignals aggregates the rolling-window journal set, the full workout
// and calendar history, and this run's analysis results into a signal vector.
// Pure computation, no side effects.
func ComputeSignals(journals []store.JournalEntry, workouts []store.WorkoutLog, items []store.CalendarItem, insights []EntryAnalysis, now time.Time) Signals {
	sig := Signals{
		WorkoutCount:  len(workouts),
		CalendarCount: len(items),
		Insights:      insights,
	}

	var sentimentSum float64
	for _, entry := range journals {
		if entry.Sentiment != nil {
			sentimentSum += *entry.Sentiment
			if *entry.Sentiment < -0.25 {
				sig.NegativeEntries++
			}
		}
	}
	if len(journals) > 0 {
		sig.SentimentAverage = sentimentSum / float64(len(journals))
	}

	for _, w := range workouts {
		if w.Overdue(now) {
			sig.OverdueWorkouts = append(sig.OverdueWorkouts, w)
		}
	}
	for _, c := range items {
		if c.Overdue(now) {
			sig.OverdueTasks = append(sig.OverdueTasks, c)
		}
	}

	for _, insight := range insights {
		if insight.Urgency == classifier.UrgencyHigh || insight.Urgency == classifier.UrgencyCritical {
			sig.UrgentEntries = append(sig.UrgentEntries, insight)
		}
		if anyToneMatches(insight.Tones, intenseTonePattern) {
			sig.IntenseToneEntries = append(sig.IntenseToneEntries, insight)
		}
		if insight.Label == classifier.LabelPositive || anyToneMatches(insight.Tones, positiveTonePattern) {
			sig.PositiveToneEntries = append(sig.PositiveToneEntries, insight)
		}
	}

	sig.TopStressors = topStressors(insights, 3)
	sig.UniqueIntenseTones = uniqueIntenseTones(sig.IntenseToneEntries)

	return sig
}

func anyToneMatches(tones []string, pattern *regexp.Regexp) bool {
	for _, tone := range tones {
		if pattern.MatchString(tone) {
			return true
		}
	}
	return false
}

// topStressors returns the most frequent distinct stressor strings, ties kept
// in first-seen order.
func topStressors(insights []EntryAnalysis, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, insight := range insights {
		for _, stressor := range insight.Stressors {
			key := strings.TrimSpace(stressor)
			if key == "" {
				continue
			}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// uniqueIntenseTones collects the intense-matching tones across entries,
// deduplicated case-insensitively with the first-seen casing preserved.
func uniqueIntenseTones(entries []EntryAnalysis) []string {
	seen := make(map[string]bool)
	var tones []string
	for _, entry := range entries {
		for _, tone := range entry.Tones {
			if !intenseTonePattern.MatchString(tone) {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(tone))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			tones = append(tones, strings.TrimSpace(tone))
		}
	}
	return tones
}
