// Package client is a typed HTTP client for the applicants API.
//
// Errors come in two kinds, matching what the UI shows:
//
//   - *ValidationError: the API rejected the payload (HTTP 400).
//   - *NetworkError: the request never completed, or the API answered
//     with anything other than the expected status.
//
// There are no retries; callers surface the error and let the user act.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aanand-mishra/orgconnect/internal/types"
)

// ValidationError is returned when the API answers 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NetworkError is returned when a request fails in transit or the API
// answers with an unexpected status. StatusCode is 0 for transport
// failures.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client talks to the applicants API rooted at BaseURL
// (e.g. "http://localhost:5001/api").
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListApplicants fetches every applicant.
func (c *Client) ListApplicants(ctx context.Context) ([]types.Applicant, error) {
	const op = "list applicants"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/applicants", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	applicants := make([]types.Applicant, 0)
	if err := json.NewDecoder(resp.Body).Decode(&applicants); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}

	return applicants, nil
}

// CreateApplicant submits input and returns the stored record.
func (c *Client) CreateApplicant(ctx context.Context, input types.ApplicantInput) (types.Applicant, error) {
	const op = "create applicant"

	body, err := json.Marshal(input)
	if err != nil {
		return types.Applicant{}, fmt.Errorf("%s: encode body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/applicants", bytes.NewReader(body))
	if err != nil {
		return types.Applicant{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Applicant{}, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusBadRequest:
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil || msg.Message == "" {
			return types.Applicant{}, &ValidationError{Message: http.StatusText(resp.StatusCode)}
		}
		return types.Applicant{}, &ValidationError{Message: msg.Message}
	default:
		drain(resp.Body)
		return types.Applicant{}, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	var applicant types.Applicant
	if err := json.NewDecoder(resp.Body).Decode(&applicant); err != nil {
		return types.Applicant{}, &NetworkError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}

	return applicant, nil
}

// drain lets the transport reuse the connection.
func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 64<<10))
}
