package domain

import (
	"strings"
	"time"
)

// Feedback score bounds, matching the feedback form's slider range.
const (
	MinFeedbackScore = 1
	MaxFeedbackScore = 100
)

// Feedback is a panelist's interview assessment of a candidate.
type Feedback struct {
	ID                  string    `json:"id"`
	CandidateID         int       `json:"candidateId"`
	ReviewerID          int       `json:"reviewerId"`
	ReviewerName        string    `json:"reviewerName"`
	OverallScore        int       `json:"overallScore"`
	Strengths           string    `json:"strengths"`
	AreasForImprovement string    `json:"areasForImprovement"`
	Comments            string    `json:"comments"`
	SubmittedAt         time.Time `json:"submittedAt"`
}

// Validate checks the submitted form fields before persistence.
func (f *Feedback) Validate() error {
	if f.CandidateID <= 0 {
		return ErrValidation("candidate id missing")
	}
	if f.OverallScore < MinFeedbackScore || f.OverallScore > MaxFeedbackScore {
		return ErrValidation("overall score must be between %d and %d", MinFeedbackScore, MaxFeedbackScore)
	}
	if strings.TrimSpace(f.Strengths) == "" {
		return ErrValidation("strengths is required")
	}
	if strings.TrimSpace(f.AreasForImprovement) == "" {
		return ErrValidation("areas for improvement is required")
	}
	return nil
}
