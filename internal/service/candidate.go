// Package service holds the application services behind the web handlers:
// candidate detail assembly, dashboard KPIs, the admin roster, and
// interview feedback.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"talentboard/internal/domain"
)

// ATS is the slice of the applicant-tracking client the candidate service
// needs.
type ATS interface {
	GetCandidate(ctx context.Context, id int) (domain.Candidate, error)
	ListTodos(ctx context.Context, userID int) ([]domain.Todo, error)
	ListPosts(ctx context.Context, userID int) ([]domain.Post, error)
}

// FeedbackReader lists stored feedback for the detail page's feedback tab.
type FeedbackReader interface {
	ListByCandidate(ctx context.Context, candidateID int) ([]domain.Feedback, error)
}

// CandidateDetail is everything the candidate detail page shows: the
// profile, the interview schedule, historical notes, and stored feedback.
type CandidateDetail struct {
	Candidate domain.Candidate
	Todos     []domain.Todo
	Posts     []domain.Post
	Feedback  []domain.Feedback
}

// CandidateService assembles candidate detail views.
type CandidateService struct {
	ats      ATS
	feedback FeedbackReader
	logger   *slog.Logger
}

// NewCandidateService creates a CandidateService.
func NewCandidateService(ats ATS, feedback FeedbackReader, logger *slog.Logger) *CandidateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateService{ats: ats, feedback: feedback, logger: logger}
}

// Detail loads the profile, schedule, and notes for one candidate in
// parallel, plus any stored feedback. A missing candidate fails the whole
// call; the schedule and notes tabs degrade to empty on their own errors
// so one flaky endpoint doesn't take down the page.
func (s *CandidateService) Detail(ctx context.Context, id int) (CandidateDetail, error) {
	var detail CandidateDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.ats.GetCandidate(gctx, id)
		if err != nil {
			return err
		}
		detail.Candidate = c
		return nil
	})
	g.Go(func() error {
		todos, err := s.ats.ListTodos(gctx, id)
		if err != nil {
			s.logger.Warn("schedule load failed", "candidate_id", id, "error", err)
			return nil
		}
		detail.Todos = todos
		return nil
	})
	g.Go(func() error {
		posts, err := s.ats.ListPosts(gctx, id)
		if err != nil {
			s.logger.Warn("notes load failed", "candidate_id", id, "error", err)
			return nil
		}
		detail.Posts = posts
		return nil
	})
	if err := g.Wait(); err != nil {
		return CandidateDetail{}, err
	}

	fb, err := s.feedback.ListByCandidate(ctx, id)
	if err != nil {
		s.logger.Warn("feedback load failed", "candidate_id", id, "error", err)
	} else {
		detail.Feedback = fb
	}

	return detail, nil
}
