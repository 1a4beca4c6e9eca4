// Package ats is the HTTP client for the external mock ATS collaborator
// (dummyjson.com): candidate listings, candidate detail, schedules, notes,
// and the login exchange.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"talentboard/internal/domain"
)

// Fallbacks for candidate records the ATS returns without a company block.
const (
	fallbackCompanyName       = "Unknown Company"
	fallbackCompanyDepartment = "Engineering"
)

// Client talks to the ATS over HTTP. All methods take a context and map
// failures onto the domain error taxonomy: non-2xx login responses become
// AuthRejectedError, network failures become TransportError.
type Client struct {
	BaseURL       string
	HTTPClient    *http.Client
	ExpiresInMins int

	logger *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithExpiresInMins sets the token lifetime requested on login.
func WithExpiresInMins(mins int) Option {
	return func(c *Client) { c.ExpiresInMins = mins }
}

// NewClient creates an ATS client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		ExpiresInMins: 60,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

// Login exchanges credentials for an identity payload. Any non-2xx status is
// treated as invalid credentials.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	body, err := json.Marshal(loginRequest{
		Username:      username,
		Password:      password,
		ExpiresInMins: c.ExpiresInMins,
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Identity{}, domain.ErrTransport("ats login", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return domain.Identity{}, domain.ErrAuthRejected("ats rejected credentials for %q (status %d)", username, resp.StatusCode)
	}

	var identity domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return domain.Identity{}, domain.ErrTransport("ats login decode", err)
	}
	return identity, nil
}

// candidateRecord is the raw user shape returned by the ATS; the company
// block is optional.
type candidateRecord struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   *struct {
		Name       string `json:"name"`
		Department string `json:"department"`
	} `json:"company"`
}

func (r candidateRecord) toDomain() domain.Candidate {
	c := domain.Candidate{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company: domain.Company{
			Name:       fallbackCompanyName,
			Department: fallbackCompanyDepartment,
		},
	}
	if r.Company != nil {
		if r.Company.Name != "" {
			c.Company.Name = r.Company.Name
		}
		if r.Company.Department != "" {
			c.Company.Department = r.Company.Department
		}
	}
	return c
}

type candidateListResponse struct {
	Users []candidateRecord `json:"users"`
	Total int               `json:"total"`
}

// ListCandidates fetches one unfiltered page of candidates.
func (c *Client) ListCandidates(ctx context.Context, skip, limit int) (domain.CandidatePage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var payload candidateListResponse
	if err := c.getJSON(ctx, "/users", q, &payload); err != nil {
		return domain.CandidatePage{}, err
	}
	return toPage(payload), nil
}

// SearchCandidates fetches candidates matching the free-text query. The ATS
// search endpoint accepts no pagination parameters; callers reset to the
// first page when searching.
func (c *Client) SearchCandidates(ctx context.Context, query string) (domain.CandidatePage, error) {
	q := url.Values{}
	q.Set("q", query)

	var payload candidateListResponse
	if err := c.getJSON(ctx, "/users/search", q, &payload); err != nil {
		return domain.CandidatePage{}, err
	}
	return toPage(payload), nil
}

// GetCandidate fetches one candidate profile by ID.
func (c *Client) GetCandidate(ctx context.Context, id int) (domain.Candidate, error) {
	var record candidateRecord
	if err := c.getJSON(ctx, "/users/"+strconv.Itoa(id), nil, &record); err != nil {
		return domain.Candidate{}, err
	}
	return record.toDomain(), nil
}

type todoListResponse struct {
	Todos []domain.Todo `json:"todos"`
}

// ListTodos fetches the schedule items tied to a candidate.
func (c *Client) ListTodos(ctx context.Context, userID int) ([]domain.Todo, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))

	var payload todoListResponse
	if err := c.getJSON(ctx, "/todos", q, &payload); err != nil {
		return nil, err
	}
	return payload.Todos, nil
}

// postRecord tolerates both reaction shapes the ATS has shipped: a plain
// integer and a {likes, dislikes} object.
type postRecord struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	UserID    int             `json:"userId"`
	Tags      []string        `json:"tags"`
	Reactions json.RawMessage `json:"reactions"`
}

func (r postRecord) toDomain() domain.Post {
	p := domain.Post{
		ID:     r.ID,
		Title:  r.Title,
		Body:   r.Body,
		UserID: r.UserID,
		Tags:   r.Tags,
	}
	if len(r.Reactions) == 0 {
		return p
	}
	var count int
	if err := json.Unmarshal(r.Reactions, &count); err == nil {
		p.Reactions = domain.Reactions{Likes: count}
		return p
	}
	_ = json.Unmarshal(r.Reactions, &p.Reactions)
	return p
}

type postListResponse struct {
	Posts []postRecord `json:"posts"`
}

// ListPosts fetches the historical notes tied to a candidate.
func (c *Client) ListPosts(ctx context.Context, userID int) ([]domain.Post, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))

	var payload postListResponse
	if err := c.getJSON(ctx, "/posts", q, &payload); err != nil {
		return nil, err
	}
	out := make([]domain.Post, 0, len(payload.Posts))
	for _, record := range payload.Posts {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func toPage(payload candidateListResponse) domain.CandidatePage {
	items := make([]domain.Candidate, 0, len(payload.Users))
	for _, record := range payload.Users {
		items = append(items, record.toDomain())
	}
	return domain.CandidatePage{Items: items, Total: payload.Total}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	started := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.ErrTransport("ats get "+path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("ats request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return domain.ErrNotFound("ats resource %s not found", path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		drain(resp.Body)
		return domain.ErrTransport("ats get "+path, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.ErrTransport("ats decode "+path, err)
	}
	return nil
}

// drain consumes the body so the connection can be reused.
func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 4096))
}
