// Package analyzer implements the wellness analyzer batch job: it scores
// recent journal entries through the classifier, aggregates journal, workout,
// and calendar signals over a rolling window, and emits at most one alert or
// reinforcement finding per run.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neuraladapt/internal/config"
	"neuraladapt/internal/store"
)

// Summary reports one run's aggregate signals for operational visibility.
type Summary struct {
	SentimentAverage      float64  `json:"sentiment_average"`
	NegativeEntries       int      `json:"negative_entries"`
	OverdueWorkoutCount   int      `json:"overdue_workout_count"`
	OverdueTaskCount      int      `json:"overdue_task_count"`
	UrgentJournalEntries  int      `json:"urgent_journal_entries"`
	IntenseToneEntryCount int      `json:"intense_tone_entry_count"`
	TopStressors          []string `json:"top_stressors"`
}

// Analyzer orchestrates one analyzer run per owner.
type Analyzer struct {
	store  *store.Store
	logger *zap.Logger
	scorer *Scorer

	aggregateWindow time.Duration
	dedupWindow     time.Duration
	maxDailyCents   int
	now             func() time.Time
}

// New wires an analyzer from the store, classifier, and analysis config.
func New(st *store.Store, cl EntryClassifier, logger *zap.Logger, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		store:           st,
		logger:          logger,
		scorer:          NewScorer(st, cl, logger, time.Duration(cfg.LookbackDays)*24*time.Hour, cfg.EntriesPerRun),
		aggregateWindow: time.Duration(cfg.AggregateDays) * 24 * time.Hour,
		dedupWindow:     time.Duration(cfg.DedupWindowHrs) * time.Hour,
		maxDailyCents:   cfg.MaxDailyCents,
		now:             time.Now,
	}
}

// Run executes one analyzer pass for the owner: score, aggregate, decide,
// persist. Runs are stateless between invocations; everything read and
// written lives in the store. Overlapping runs for the same owner are not
// guarded against.
func (a *Analyzer) Run(ctx context.Context, userID string) (*Summary, error) {
	now := a.now()

	insights, err := a.scorer.Score(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("scoring pass failed: %w", err)
	}

	journals, err := a.store.JournalEntriesSince(userID, now.Add(-a.aggregateWindow), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal window: %w", err)
	}
	workouts, err := a.store.WorkoutLogs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read workout logs: %w", err)
	}
	items, err := a.store.CalendarItems(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar items: %w", err)
	}

	sig := ComputeSignals(journals, workouts, items, insights, now)

	if decision := Decide(sig, now); decision != nil {
		if _, err := a.store.UpsertFinding(userID, decision.Type, decision.Title, decision.Message, decision.Severity, now, a.dedupWindow); err != nil {
			return nil, fmt.Errorf("failed to persist finding: %w", err)
		}
		a.logger.Info("finding recorded",
			zap.String("user_id", userID),
			zap.String("type", decision.Type),
			zap.String("title", decision.Title),
			zap.Int("severity", decision.Severity))
	}

	summary := &Summary{
		SentimentAverage:      sig.SentimentAverage,
		NegativeEntries:       sig.NegativeEntries,
		OverdueWorkoutCount:   len(sig.OverdueWorkouts),
		OverdueTaskCount:      len(sig.OverdueTasks),
		UrgentJournalEntries:  len(sig.UrgentEntries),
		IntenseToneEntryCount: len(sig.IntenseToneEntries),
		TopStressors:          sig.TopStressors,
	}

	a.logger.Info("analyzer run complete",
		zap.String("user_id", userID),
		zap.Float64("sentiment_average", summary.SentimentAverage),
		zap.Int("negative_entries", summary.NegativeEntries),
		zap.Int("overdue_workouts", summary.OverdueWorkoutCount),
		zap.Int("overdue_tasks", summary.OverdueTaskCount),
		zap.Int("urgent_entries", summary.UrgentJournalEntries),
		zap.Int("intense_tone_entries", summary.IntenseToneEntryCount),
		zap.Strings("top_stressors", summary.TopStressors))

	a.reportUsage(now)

	return summary, nil
}

// RunForAllOwners runs the analyzer for every user. Each owner's data is
// fully partitioned, so owners can run in parallel; within one owner the run
// stays strictly sequential.
func (a *Analyzer) RunForAllOwners(ctx context.Context) error {
	users, err := a.store.Users()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, user := range users {
		user := user
		g.Go(func() error {
			if _, err := a.Run(ctx, user.ID); err != nil {
				return fmt.Errorf("analyzer run for %s failed: %w", user.Email, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// reportUsage logs the day's estimated spend against the configured budget.
// Budget exhaustion never gates calls in this version.
func (a *Analyzer) reportUsage(now time.Time) {
	units, err := a.store.UsageForDay(now)
	if err != nil {
		a.logger.Warn("failed to read usage meter", zap.Error(err))
		return
	}
	if a.maxDailyCents > 0 && units > a.maxDailyCents {
		a.logger.Warn("estimated usage above daily budget",
			zap.Int("units", units),
			zap.Int("budget_cents", a.maxDailyCents))
		return
	}
	a.logger.Info("estimated usage", zap.Int("units", units))
}
