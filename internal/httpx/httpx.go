package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultUserAgent = "filterdesk"

var DefaultTimeout = 20 * time.Second

// Client sends requests with a fixed User-Agent. A nil HTTP uses
// http.DefaultClient.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.URL, strings.TrimSpace(e.Body), e.Code)
}

// GetJSON issues a GET with the default User-Agent.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, query url.Values) ([]byte, error) {
	return Client{HTTP: client}.GetJSON(ctx, rawURL, query)
}

// PostForm issues a form POST with the default User-Agent.
func PostForm(ctx context.Context, client *http.Client, rawURL string, form url.Values) ([]byte, error) {
	return Client{HTTP: client}.PostForm(ctx, rawURL, form)
}

// GetJSON issues a GET with query parameters appended to rawURL.
func (c Client) GetJSON(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	u := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// PostForm issues an application/x-www-form-urlencoded POST.
func (c Client) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, req)
}

func (c Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	agent := c.UserAgent
	if agent == "" {
		agent = DefaultUserAgent
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", agent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Method: req.Method, URL: req.URL.Redacted(), Code: resp.StatusCode, Body: string(b)}
	}
	all, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return all, nil
}

// WaitHTTPUp polls url until it answers with a status below 500.
func WaitHTTPUp(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for %s", url)
		}
		resp, err := http.Get(url) // #nosec G107
		if err == nil && resp.StatusCode < 500 {
			resp.Body.Close()
			return nil
		}
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		time.Sleep(300 * time.Millisecond)
	}
}
