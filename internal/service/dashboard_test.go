package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentboard/internal/domain"
)

type fakeRecentLister struct {
	feedback []domain.Feedback
	err      error
}

func (f *fakeRecentLister) ListRecent(_ context.Context, _ int) ([]domain.Feedback, error) {
	return f.feedback, f.err
}

func TestDashboardService_SnapshotBounds(t *testing.T) {
	svc := NewDashboardService(nil)

	for i := 0; i < 50; i++ {
		svc.Refresh()
		snap := svc.Snapshot()
		assert.GreaterOrEqual(t, snap.InterviewsThisWeek, 5)
		assert.LessOrEqual(t, snap.InterviewsThisWeek, 24)
		assert.GreaterOrEqual(t, snap.AverageFeedbackScore, 70)
		assert.LessOrEqual(t, snap.AverageFeedbackScore, 99)
		assert.GreaterOrEqual(t, snap.NoShows, 0)
		assert.LessOrEqual(t, snap.NoShows, 4)
		assert.GreaterOrEqual(t, snap.Completed(), 0)
	}
}

func TestDashboardService_RefreshReplacesSnapshot(t *testing.T) {
	svc := NewDashboardService(nil)

	seq := []int{0, 10, 2, 19, 29, 4}
	i := 0
	svc.intn = func(int) int { v := seq[i%len(seq)]; i++; return v }
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	svc.Refresh()
	first := svc.Snapshot()
	assert.Equal(t, 5, first.InterviewsThisWeek)
	assert.Equal(t, 80, first.AverageFeedbackScore)
	assert.Equal(t, 2, first.NoShows)
	assert.Equal(t, 3, first.Completed())

	svc.Refresh()
	second := svc.Snapshot()
	assert.Equal(t, 24, second.InterviewsThisWeek)
	assert.Equal(t, 99, second.AverageFeedbackScore)
	assert.Equal(t, 4, second.NoShows)
}

func TestDashboardService_Activity(t *testing.T) {
	lister := &fakeRecentLister{feedback: []domain.Feedback{{
		ID: "fb-1", CandidateID: 15, ReviewerName: "Rajesh Kumar",
		OverallScore: 85, SubmittedAt: time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC),
	}}}
	svc := NewDashboardService(lister)

	entries := svc.Activity(context.Background())
	require.GreaterOrEqual(t, len(entries), 3)
	assert.Equal(t, "feedback", entries[0].Kind)
	assert.Contains(t, entries[0].Detail, "Rajesh Kumar")
	assert.Contains(t, entries[0].Detail, "85/100")
}

func TestDashboardService_ActivityWithoutFeedback(t *testing.T) {
	svc := NewDashboardService(&fakeRecentLister{err: context.DeadlineExceeded})

	entries := svc.Activity(context.Background())
	require.Len(t, entries, 2, "the feed falls back to the standing entries")
	assert.Equal(t, "scheduled", entries[0].Kind)
	assert.Equal(t, "no_show", entries[1].Kind)
}
