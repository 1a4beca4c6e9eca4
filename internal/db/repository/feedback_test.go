package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "talentboard/internal/db"
	"talentboard/internal/domain"
)

func insertFeedback(t *testing.T, repo *FeedbackRepo, id string, candidateID int, score int, at time.Time) {
	t.Helper()
	err := repo.Insert(context.Background(), domain.Feedback{
		ID:           id,
		CandidateID:  candidateID,
		ReviewerID:   7,
		ReviewerName: "Rajesh Kumar",
		OverallScore: score,
		Strengths:    "clear communication",
		Comments:     "solid round",
		SubmittedAt:  at,
	})
	require.NoError(t, err)
}

func TestFeedbackRepo_InsertAndListByCandidate(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewFeedbackRepo(db)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	insertFeedback(t, repo, "fb-1", 15, 80, base)
	insertFeedback(t, repo, "fb-2", 15, 65, base.Add(time.Hour))
	insertFeedback(t, repo, "fb-3", 22, 90, base.Add(2*time.Hour))

	entries, err := repo.ListByCandidate(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "fb-2", entries[0].ID)
	assert.Equal(t, "fb-1", entries[1].ID)
	assert.Equal(t, 65, entries[0].OverallScore)
	assert.Equal(t, "Rajesh Kumar", entries[0].ReviewerName)
}

func TestFeedbackRepo_ListByCandidateEmpty(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewFeedbackRepo(db)

	entries, err := repo.ListByCandidate(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeedbackRepo_ListRecent(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewFeedbackRepo(db)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		insertFeedback(t, repo, "fb-"+string(rune('a'+i)), 10+i, 70+i, base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := repo.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "fb-e", entries[0].ID)
	assert.Equal(t, "fb-d", entries[1].ID)
	assert.Equal(t, "fb-c", entries[2].ID)
}

func TestFeedbackRepo_ListRecentDefaultLimit(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewFeedbackRepo(db)

	insertFeedback(t, repo, "fb-only", 1, 50, time.Now().UTC())

	entries, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
