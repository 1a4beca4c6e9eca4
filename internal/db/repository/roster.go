package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"talentboard/internal/domain"
)

// RosterRepo persists the internal users managed from the admin panel.
type RosterRepo struct {
	db *sql.DB
}

// NewRosterRepo creates a RosterRepo on the given (write) pool.
func NewRosterRepo(db *sql.DB) *RosterRepo {
	return &RosterRepo{db: db}
}

// Count returns the number of roster members.
func (r *RosterRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roster_members`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count roster: %w", err)
	}
	return n, nil
}

// Insert adds a new roster member.
func (r *RosterRepo) Insert(ctx context.Context, m domain.RosterMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roster_members (id, name, email, role, avatar) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, string(m.Role), m.Avatar)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.ErrConflict("roster member with email %q already exists", m.Email)
		}
		return fmt.Errorf("insert roster member: %w", err)
	}
	return nil
}

// Get returns one roster member by ID.
func (r *RosterRepo) Get(ctx context.Context, id int) (domain.RosterMember, error) {
	var (
		m    domain.RosterMember
		role string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, avatar FROM roster_members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email, &role, &m.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RosterMember{}, domain.ErrNotFound("roster member %d not found", id)
	}
	if err != nil {
		return domain.RosterMember{}, fmt.Errorf("get roster member: %w", err)
	}
	m.Role = domain.Role(role)
	return m, nil
}

// List returns one page of roster members matching the filter plus the
// filtered total.
func (r *RosterRepo) List(ctx context.Context, filter domain.RosterFilter) ([]domain.RosterMember, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "(name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE)")
		pattern := "%" + s + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Role != nil {
		where = append(where, "role = ?")
		args = append(args, string(*filter.Role))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roster_members WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roster members: %w", err)
	}

	query := `SELECT id, name, email, role, avatar FROM roster_members WHERE ` + cond +
		` ORDER BY id LIMIT ? OFFSET ?`
	page := filter.Page.Clamp(total)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roster members: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.RosterMember
	for rows.Next() {
		var (
			m    domain.RosterMember
			role string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role, &m.Avatar); err != nil {
			return nil, 0, fmt.Errorf("scan roster member: %w", err)
		}
		m.Role = domain.Role(role)
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// UpdateRole reassigns a member's role.
func (r *RosterRepo) UpdateRole(ctx context.Context, id int, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roster_members SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(role), id)
	if err != nil {
		return fmt.Errorf("update roster role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("roster member %d not found", id)
	}
	return nil
}

// Update rewrites a member's editable details.
func (r *RosterRepo) Update(ctx context.Context, m domain.RosterMember) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roster_members SET name = ?, email = ?, role = ?, avatar = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Name, m.Email, string(m.Role), m.Avatar, m.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.ErrConflict("roster member with email %q already exists", m.Email)
		}
		return fmt.Errorf("update roster member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("roster member %d not found", m.ID)
	}
	return nil
}
