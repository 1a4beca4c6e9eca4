package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"talentboard/internal/domain"
)

// FeedbackStore persists feedback entries.
type FeedbackStore interface {
	Insert(ctx context.Context, f domain.Feedback) error
	ListByCandidate(ctx context.Context, candidateID int) ([]domain.Feedback, error)
}

// FeedbackInput is the feedback form as submitted.
type FeedbackInput struct {
	CandidateID         int
	OverallScore        int
	Strengths           string
	AreasForImprovement string
	Comments            string
}

// FeedbackService validates and stores panelist feedback.
type FeedbackService struct {
	store  FeedbackStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(store FeedbackStore, logger *slog.Logger) *FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackService{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return ksuid.New().String() },
	}
}

// Submit stores a feedback entry authored by the session holder. Only
// panelists may submit; free-text fields are sanitized before persistence.
func (s *FeedbackService) Submit(ctx context.Context, sess domain.Session, in FeedbackInput) (domain.Feedback, error) {
	if sess.Role != domain.RolePanelist {
		return domain.Feedback{}, domain.ErrAccessDenied("only panelists may submit feedback")
	}

	f := domain.Feedback{
		ID:                  s.newID(),
		CandidateID:         in.CandidateID,
		ReviewerID:          sess.Identity.ID,
		ReviewerName:        sess.Identity.FullName(),
		OverallScore:        in.OverallScore,
		Strengths:           sanitizeText(in.Strengths),
		AreasForImprovement: sanitizeText(in.AreasForImprovement),
		Comments:            sanitizeText(in.Comments),
		SubmittedAt:         s.now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return domain.Feedback{}, err
	}

	if err := s.store.Insert(ctx, f); err != nil {
		return domain.Feedback{}, err
	}

	s.logger.Info("feedback submitted",
		"feedback_id", f.ID, "candidate_id", f.CandidateID,
		"reviewer_id", f.ReviewerID, "score", f.OverallScore)
	return f, nil
}

// ListByCandidate returns stored feedback for one candidate, newest first.
func (s *FeedbackService) ListByCandidate(ctx context.Context, candidateID int) ([]domain.Feedback, error) {
	return s.store.ListByCandidate(ctx, candidateID)
}

var scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)

// sanitizeText strips script tags from free-text input and trims whitespace.
func sanitizeText(input string) string {
	return strings.TrimSpace(scriptTagRe.ReplaceAllString(input, ""))
}
