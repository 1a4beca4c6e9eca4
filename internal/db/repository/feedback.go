package repository

import (
	"context"
	"database/sql"
	"fmt"

	"talentboard/internal/domain"
)

// FeedbackRepo persists panelist interview feedback.
type FeedbackRepo struct {
	db *sql.DB
}

// NewFeedbackRepo creates a FeedbackRepo on the given (write) pool.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Insert stores a new feedback entry.
func (r *FeedbackRepo) Insert(ctx context.Context, f domain.Feedback) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (id, candidate_id, reviewer_id, reviewer_name, overall_score,
			strengths, areas_for_improvement, comments, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.CandidateID, f.ReviewerID, f.ReviewerName, f.OverallScore,
		f.Strengths, f.AreasForImprovement, f.Comments, f.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ListByCandidate returns all feedback for one candidate, newest first.
func (r *FeedbackRepo) ListByCandidate(ctx context.Context, candidateID int) ([]domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, candidate_id, reviewer_id, reviewer_name, overall_score,
			strengths, areas_for_improvement, comments, submitted_at
		FROM feedback WHERE candidate_id = ? ORDER BY submitted_at DESC`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return scanFeedback(rows)
}

// ListRecent returns the newest feedback entries across all candidates.
func (r *FeedbackRepo) ListRecent(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, candidate_id, reviewer_id, reviewer_name, overall_score,
			strengths, areas_for_improvement, comments, submitted_at
		FROM feedback ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent feedback: %w", err)
	}
	return scanFeedback(rows)
}

func scanFeedback(rows *sql.Rows) ([]domain.Feedback, error) {
	defer rows.Close() //nolint:errcheck

	var out []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.CandidateID, &f.ReviewerID, &f.ReviewerName,
			&f.OverallScore, &f.Strengths, &f.AreasForImprovement, &f.Comments, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
