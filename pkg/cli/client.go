package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"talentboard/internal/domain"
)

// APIError is a non-2xx response from the server API.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.HTTPStatus)
}

// Client is a thin HTTP client for the talentboard JSON API.
type Client struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewClient creates a client for the given host, e.g. "http://localhost:8080".
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LoginResult is the payload returned by Login.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expiresIn"`
	Identity  domain.Identity `json:"identity"`
	Role      domain.Role     `json:"role"`
}

func (c *Client) Login(ctx context.Context, username, password string, role domain.Role) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/login", nil, map[string]string{
		"username": username,
		"password": password,
		"role":     string(role),
	}, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/logout", nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (domain.Session, error) {
	var out domain.Session
	err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, nil, &out)
	return out, err
}

// CandidatePage mirrors the /candidates list response.
type CandidatePage struct {
	Items      []domain.Candidate `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	Stale      bool               `json:"stale"`
}

func (c *Client) ListCandidates(ctx context.Context, term string, page int) (CandidatePage, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	var out CandidatePage
	err := c.do(ctx, http.MethodGet, "/api/v1/candidates", q, nil, &out)
	return out, err
}

// CandidateDetail mirrors the /candidates/{id} response.
type CandidateDetail struct {
	Candidate domain.Candidate  `json:"candidate"`
	Schedule  []domain.Todo     `json:"schedule"`
	Notes     []domain.Post     `json:"notes"`
	Feedback  []domain.Feedback `json:"feedback"`
}

func (c *Client) GetCandidate(ctx context.Context, id int) (CandidateDetail, error) {
	var out CandidateDetail
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/candidates/%d", id), nil, nil, &out)
	return out, err
}

// FeedbackSubmission is the body for SubmitFeedback.
type FeedbackSubmission struct {
	OverallScore        int    `json:"overallScore"`
	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areasForImprovement"`
	Comments            string `json:"comments"`
}

func (c *Client) SubmitFeedback(ctx context.Context, candidateID int, in FeedbackSubmission) (domain.Feedback, error) {
	var out domain.Feedback
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/candidates/%d/feedback", candidateID), nil, in, &out)
	return out, err
}

// KPIReport mirrors the /kpis response.
type KPIReport struct {
	InterviewsThisWeek   int                    `json:"interviewsThisWeek"`
	AverageFeedbackScore int                    `json:"averageFeedbackScore"`
	NoShows              int                    `json:"noShows"`
	Completed            int                    `json:"completed"`
	GeneratedAt          time.Time              `json:"generatedAt"`
	Activity             []domain.ActivityEntry `json:"activity"`
}

func (c *Client) KPIs(ctx context.Context) (KPIReport, error) {
	var out KPIReport
	err := c.do(ctx, http.MethodGet, "/api/v1/kpis", nil, nil, &out)
	return out, err
}

// RosterPage mirrors the /roster list response.
type RosterPage struct {
	Items      []domain.RosterMember `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

func (c *Client) ListRoster(ctx context.Context, term string, role *domain.Role, page int) (RosterPage, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if role != nil {
		q.Set("role", string(*role))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	var out RosterPage
	err := c.do(ctx, http.MethodGet, "/api/v1/roster", q, nil, &out)
	return out, err
}

func (c *Client) UpdateRosterRole(ctx context.Context, memberID int, role domain.Role) (domain.RosterMember, error) {
	var out domain.RosterMember
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/roster/%d/role", memberID), nil, map[string]string{
		"role": string(role),
	}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return &APIError{HTTPStatus: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
