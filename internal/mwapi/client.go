package mwapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"filterdesk/internal/config"
	"filterdesk/internal/httpx"
)

// Status values of the logical check-syntax response.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CheckRequest is the logical validation request. It is a snapshot of the
// filter text at submission time.
type CheckRequest struct {
	Action     string `json:"action"`
	FilterText string `json:"filterText"`
}

// NewCheckRequest snapshots text into a request.
func NewCheckRequest(text string) CheckRequest {
	return CheckRequest{Action: "checkSyntax", FilterText: text}
}

// CheckResponse is the logical validation response.
type CheckResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Character *int   `json:"character,omitempty"`
}

// SyntaxError reports where the server stopped parsing. Offset is a 0-based
// character (rune) index into the exact text that was sent.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (at character %d)", e.Message, e.Offset)
}

// Result is the outcome of a syntax check that reached the server. A nil Err
// means the filter parsed.
type Result struct {
	Err *SyntaxError
}

func (r Result) OK() bool { return r.Err == nil }

// Response converts r back into the logical wire shape.
func (r Result) Response() CheckResponse {
	if r.OK() {
		return CheckResponse{Status: StatusOK}
	}
	off := r.Err.Offset
	return CheckResponse{Status: StatusError, Message: r.Err.Message, Character: &off}
}

// APIError is an error envelope returned by the action API. It is a
// transport failure, not a syntax error.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

// Client talks to one MediaWiki action API endpoint.
type Client struct {
	Endpoint  string
	HTTP      *http.Client
	Timeout   time.Duration
	UserAgent string // empty uses httpx.DefaultUserAgent
}

// New builds a client from the api section of the config.
func New(c config.API) *Client {
	return &Client{
		Endpoint:  c.Endpoint,
		HTTP:      &http.Client{},
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
	}
}

func (c *Client) transport() httpx.Client {
	return httpx.Client{HTTP: c.HTTP, UserAgent: c.UserAgent}
}

func (c *Client) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

type envelope struct {
	Error *APIError `json:"error,omitempty"`
}

// CheckSyntax submits text for validation. A returned error is always a
// transport failure; syntax problems come back in Result.Err.
func (c *Client) CheckSyntax(ctx context.Context, text string) (Result, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	req := NewCheckRequest(text)
	form := url.Values{
		"action":        {"abusefilterchecksyntax"},
		"filter":        {req.FilterText},
		"format":        {"json"},
		"formatversion": {"2"},
	}
	body, err := c.transport().PostForm(ctx, c.Endpoint, form)
	if err != nil {
		return Result{}, fmt.Errorf("check syntax: %w", err)
	}
	var resp struct {
		envelope
		Check *CheckResponse `json:"abusefilterchecksyntax"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, fmt.Errorf("parse check response: %w", err)
	}
	if resp.Error != nil {
		return Result{}, resp.Error
	}
	if resp.Check == nil {
		return Result{}, errors.New("check response has no abusefilterchecksyntax")
	}
	return resultFrom(*resp.Check)
}

func resultFrom(r CheckResponse) (Result, error) {
	switch r.Status {
	case StatusOK:
		return Result{}, nil
	case StatusError:
		off := 0
		if r.Character != nil && *r.Character > 0 {
			off = *r.Character
		}
		return Result{Err: &SyntaxError{Message: r.Message, Offset: off}}, nil
	default:
		return Result{}, fmt.Errorf("unexpected check status %q", r.Status)
	}
}

// FetchFilter loads the pattern of filter id. found is false when the
// filter does not exist.
func (c *Client) FetchFilter(ctx context.Context, id int) (pattern string, found bool, err error) {
	if id <= 0 {
		return "", false, nil
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	sid := strconv.Itoa(id)
	q := url.Values{
		"action":        {"query"},
		"list":          {"abusefilters"},
		"abfprop":       {"id|pattern"},
		"abfstartid":    {sid},
		"abfendid":      {sid},
		"abflimit":      {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}
	body, err := c.transport().GetJSON(ctx, c.Endpoint, q)
	if err != nil {
		return "", false, fmt.Errorf("fetch filter %d: %w", id, err)
	}
	var resp struct {
		envelope
		Query struct {
			AbuseFilters []struct {
				ID      int     `json:"id"`
				Pattern *string `json:"pattern"`
			} `json:"abusefilters"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false, fmt.Errorf("parse filter %d: %w", id, err)
	}
	if resp.Error != nil {
		return "", false, resp.Error
	}
	for _, f := range resp.Query.AbuseFilters {
		if f.Pattern == nil {
			continue
		}
		if f.ID != 0 && f.ID != id {
			continue
		}
		return *f.Pattern, true, nil
	}
	return "", false, nil
}

// Ping asks the endpoint for siteinfo; used by doctor.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	body, err := c.transport().GetJSON(ctx, c.Endpoint, url.Values{
		"action": {"query"}, "meta": {"siteinfo"}, "format": {"json"}, "formatversion": {"2"},
	})
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse siteinfo: %w", err)
	}
	if env.Error != nil {
		return env.Error
	}
	return nil
}
