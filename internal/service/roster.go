package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"talentboard/internal/db/repository"
	"talentboard/internal/domain"
)

// AdminPageSize is how many roster members the admin panel lists per page.
const AdminPageSize = 6

// RosterService manages the internal user roster behind the admin panel.
type RosterService struct {
	repo   *repository.RosterRepo
	logger *slog.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(repo *repository.RosterRepo, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{repo: repo, logger: logger}
}

// Seed loads the roster fixture into an empty roster. A non-empty roster is
// left alone, so edits survive restarts.
func (s *RosterService) Seed(ctx context.Context, path string) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read roster seed: %w", err)
	}
	var members []domain.RosterMember
	if err := yaml.Unmarshal(raw, &members); err != nil {
		return fmt.Errorf("parse roster seed: %w", err)
	}

	for i := range members {
		if err := members[i].Validate(); err != nil {
			return fmt.Errorf("roster seed entry %d: %w", i, err)
		}
		if err := s.repo.Insert(ctx, members[i]); err != nil {
			return err
		}
	}

	s.logger.Info("roster seeded", "members", len(members), "path", path)
	return nil
}

// List returns one admin page of roster members and the filtered total.
func (s *RosterService) List(ctx context.Context, filter domain.RosterFilter) ([]domain.RosterMember, int, error) {
	if filter.Page.PageSize <= 0 {
		filter.Page.PageSize = AdminPageSize
	}
	return s.repo.List(ctx, filter)
}

// Get returns one roster member.
func (s *RosterService) Get(ctx context.Context, id int) (domain.RosterMember, error) {
	return s.repo.Get(ctx, id)
}

// UpdateRole reassigns a member's role.
func (s *RosterService) UpdateRole(ctx context.Context, id int, role domain.Role) (domain.RosterMember, error) {
	if !role.Valid() {
		return domain.RosterMember{}, domain.ErrValidation("unknown role %q", role)
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return domain.RosterMember{}, err
	}
	s.logger.Info("roster role updated", "member_id", id, "role", role)
	return s.repo.Get(ctx, id)
}

// Update rewrites a member's editable details.
func (s *RosterService) Update(ctx context.Context, m domain.RosterMember) (domain.RosterMember, error) {
	m.Name = sanitizeText(m.Name)
	m.Email = sanitizeText(m.Email)
	if err := m.Validate(); err != nil {
		return domain.RosterMember{}, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return domain.RosterMember{}, err
	}
	s.logger.Info("roster member updated", "member_id", m.ID)
	return s.repo.Get(ctx, m.ID)
}
