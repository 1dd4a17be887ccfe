package buildlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, hash := range []string{"aaa", "bbb", "ccc"} {
		_, err := s.Record(ctx, Record{
			StartedAt: time.Date(2023, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Duration:  2 * time.Second,
			Mode:      ModeProduction,
			Posts:     10 + i,
			SiteHash:  hash,
			Outcome:   "success",
		})
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "ccc", recent[0].SiteHash)
	require.Equal(t, "bbb", recent[1].SiteHash)
	require.Equal(t, 2*time.Second, recent[0].Duration)
}

func TestLastSuccessful_SkipsFailuresAndOtherModes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, Record{StartedAt: time.Now(), Mode: ModeProduction, SiteHash: "good", Outcome: "success"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Record{StartedAt: time.Now(), Mode: ModeProduction, Outcome: "failure", Error: "builder exited 1"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Record{StartedAt: time.Now(), Mode: ModeDraft, SiteHash: "draft", Outcome: "success"})
	require.NoError(t, err)

	last, err := s.LastSuccessful(ctx, ModeProduction)
	require.NoError(t, err)
	require.Equal(t, "good", last.SiteHash)
}

func TestLastSuccessful_Empty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LastSuccessful(context.Background(), ModeProduction)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoBuilds))
}
