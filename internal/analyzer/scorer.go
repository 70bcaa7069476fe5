package analyzer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

// EntryClassifier scores a single journal entry. Implemented by
// *classifier.Client; tests substitute deterministic stubs.
type EntryClassifier interface {
	ClassifyEntry(ctx context.Context, content string) (classifier.Sentiment, error)
}

// Scorer selects recent journal entries, scores them through the classifier,
// and writes the derived sentiment fields back onto each entry.
type Scorer struct {
	store      *store.Store
	classifier EntryClassifier
	logger     *zap.Logger

	lookback   time.Duration
	batchLimit int
	now        func() time.Time
}

// NewScorer creates a scorer over the given store and classifier.
func NewScorer(st *store.Store, cl EntryClassifier, logger *zap.Logger, lookback time.Duration, batchLimit int) *Scorer {
	return &Scorer{
		store:      st,
		classifier: cl,
		logger:     logger,
		lookback:   lookback,
		batchLimit: batchLimit,
		now:        time.Now,
	}
}

// Score runs one scoring pass for the owner. Entries created within the
// lookback window are scored oldest first, capped at the batch limit; entries
// already scored inside the window are re-scored and overwritten, which keeps
// repeated runs safe (last write wins). A classifier failure skips that entry
// for this run; a store failure aborts the pass.
func (s *Scorer) Score(ctx context.Context, userID string) ([]EntryAnalysis, error) {
	now := s.now()
	entries, err := s.store.JournalEntriesSince(userID, now.Add(-s.lookback), s.batchLimit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	// One estimated-spend unit per entry submitted this run.
	if err := s.store.AddUsage(now, len(entries)); err != nil {
		return nil, err
	}

	var results []EntryAnalysis
	for _, entry := range entries {
		payload, err := s.classifier.ClassifyEntry(ctx, entry.Content)
		if err != nil {
			s.logger.Error("failed to score journal entry",
				zap.String("entry_id", entry.ID),
				zap.Error(err))
			continue
		}

		if err := s.store.UpdateJournalScore(entry.ID, payload.Sentiment, positivityTag(payload.Label, payload.Tones)); err != nil {
			return nil, err
		}

		results = append(results, EntryAnalysis{
			EntryID:   entry.ID,
			Sentiment: payload,
		})
	}

	return results, nil
}

// positivityTag renders the short dashboard label for a scored entry:
// "{label} • {first tone}" when a first tone exists, otherwise the label.
func positivityTag(label string, tones []string) string {
	var parts []string
	if label != "" {
		parts = append(parts, label)
	}
	if len(tones) > 0 && tones[0] != "" {
		parts = append(parts, tones[0])
	}
	if len(parts) == 0 {
		return label
	}
	return strings.Join(parts, " • ")
}
