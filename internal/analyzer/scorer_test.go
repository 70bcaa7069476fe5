package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"neuraladapt/internal/classifier"
	"neuraladapt/internal/store"
)

// stubClassifier returns canned payloads keyed by entry content.
type stubClassifier struct {
	payloads map[string]classifier.Sentiment
	failFor  map[string]bool
	calls    int
}

func (s *stubClassifier) ClassifyEntry(_ context.Context, content string) (classifier.Sentiment, error) {
	s.calls++
	if s.failFor[content] {
		return classifier.Sentiment{}, errors.New("classifier unavailable")
	}
	if payload, ok := s.payloads[content]; ok {
		return payload, nil
	}
	return classifier.Sentiment{Label: classifier.LabelNeutral, Urgency: classifier.UrgencyLow}, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestUser(t *testing.T, st *store.Store) *store.User {
	t.Helper()
	user, err := st.EnsureDemoUser()
	require.NoError(t, err)
	return user
}

func addEntry(t *testing.T, st *store.Store, userID, content string, createdAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, st.SaveJournalEntry(&store.JournalEntry{
		ID:        id,
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}))
	return id
}

func newTestScorer(st *store.Store, stub *stubClassifier, now time.Time) *Scorer {
	s := NewScorer(st, stub, zap.NewNop(), 3*24*time.Hour, 5)
	s.now = func() time.Time { return now }
	return s
}

func TestScorerBatchCeiling(t *testing.T) {
	st := newTestStore(t)
	user := newTestUser(t, st)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Five older entries, then a gap, then three newer ones.
	offsets := []time.Duration{-10, -9, -8, -7, -6, -3, -2, -1}
	ids := make([]string, len(offsets))
	for i, h := range offsets {
		ids[i] = addEntry(t, st, user.ID, string(rune('a'+i)), now.Add(h*time.Hour))
	}

	stub := &stubClassifier{}
	results, err := newTestScorer(st, stub, now).Score(context.Background(), user.ID)
	require.NoError(t, err)

	// Only the five oldest are scored this run.
	require.Len(t, results, 5)
	assert.Equal(t, 5, stub.calls)
	for i, result := range results {
		assert.Equal(t, ids[i], result.EntryID)
	}

	entries, err := st.JournalEntriesSince(user.ID, now.Add(-24*time.Hour*3), 0)
	require.NoError(t, err)
	for i, entry := range entries {
		if i < 5 {
			assert.NotNil(t, entry.Sentiment, "entry %d should be scored", i)
		} else {
			assert.Nil(t, entry.Sentiment, "entry %d should wait for a later run", i)
		}
	}

	// Once the older batch ages out of the window, the remaining three are
	// picked up.
	later := now.Add(68 * time.Hour)
	results, err = newTestScorer(st, stub, later).Score(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{ids[5], ids[6], ids[7]}, []string{results[0].EntryID, results[1].EntryID, results[2].EntryID})
}

func TestScorerIdempotentRescoring(t *testing.T) {
	st := newTestStore(t)
	user := newTestUser(t, st)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	addEntry(t, st, user.ID, "rough morning", now.Add(-2*time.Hour))
	addEntry(t, st, user.ID, "better evening", now.Add(-1*time.Hour))

	stub := &stubClassifier{payloads: map[string]classifier.Sentiment{
		"rough morning":  {Sentiment: -0.4, Label: classifier.LabelNegative, Tones: []string{"tired"}, Urgency: classifier.UrgencyLow},
		"better evening": {Sentiment: 0.3, Label: classifier.LabelPositive, Urgency: classifier.UrgencyNone},
	}}
	scorer := newTestScorer(st, stub, now)

	snapshot := func() []store.JournalEntry {
		entries, err := st.JournalEntriesSince(user.ID, now.Add(-24*time.Hour), 0)
		require.NoError(t, err)
		return entries
	}

	_, err := scorer.Score(context.Background(), user.ID)
	require.NoError(t, err)
	first := snapshot()

	_, err = scorer.Score(context.Background(), user.ID)
	require.NoError(t, err)
	second := snapshot()

	// Re-running inside the window overwrites with identical values and never
	// duplicates entries.
	require.Len(t, second, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, -0.4, *second[0].Sentiment)
	assert.Equal(t, "Negative • tired", *second[0].PositivityTag)
	assert.Equal(t, "Positive", *second[1].PositivityTag)
}

func TestScorerSkipsFailedEntries(t *testing.T) {
	st := newTestStore(t)
	user := newTestUser(t, st)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	addEntry(t, st, user.ID, "first", now.Add(-3*time.Hour))
	failingID := addEntry(t, st, user.ID, "second", now.Add(-2*time.Hour))
	addEntry(t, st, user.ID, "third", now.Add(-1*time.Hour))

	stub := &stubClassifier{failFor: map[string]bool{"second": true}}
	results, err := newTestScorer(st, stub, now).Score(context.Background(), user.ID)
	require.NoError(t, err)

	// The failed entry is silently omitted and left unscored for the next run.
	require.Len(t, results, 2)
	assert.Equal(t, 3, stub.calls)

	entries, err := st.JournalEntriesSince(user.ID, now.Add(-24*time.Hour), 0)
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.ID == failingID {
			assert.Nil(t, entry.Sentiment)
		} else {
			assert.NotNil(t, entry.Sentiment)
		}
	}
}

func TestScorerEmptyWindow(t *testing.T) {
	st := newTestStore(t)
	user := newTestUser(t, st)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// An entry far outside the lookback window does not qualify.
	addEntry(t, st, user.ID, "ancient history", now.Add(-30*24*time.Hour))

	stub := &stubClassifier{}
	results, err := newTestScorer(st, stub, now).Score(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, 0, stub.calls)

	units, err := st.UsageForDay(now)
	require.NoError(t, err)
	assert.Equal(t, 0, units)
}

func TestScorerTracksUsage(t *testing.T) {
	st := newTestStore(t)
	user := newTestUser(t, st)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	addEntry(t, st, user.ID, "one", now.Add(-2*time.Hour))
	addEntry(t, st, user.ID, "two", now.Add(-1*time.Hour))

	_, err := newTestScorer(st, &stubClassifier{}, now).Score(context.Background(), user.ID)
	require.NoError(t, err)

	units, err := st.UsageForDay(now)
	require.NoError(t, err)
	assert.Equal(t, 2, units)
}

func TestPositivityTag(t *testing.T) {
	tests := []struct {
		name  string
		label string
		tones []string
		want  string
	}{
		{"label and tone", "Negative", []string{"anxious", "tired"}, "Negative • anxious"},
		{"label only", "Neutral", nil, "Neutral"},
		{"empty first tone", "Positive", []string{""}, "Positive"},
		{"empty label with tone", "", []string{"calm"}, "calm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, positivityTag(tt.label, tt.tones))
		})
	}
}
