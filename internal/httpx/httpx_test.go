package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONAppendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "1", r.URL.Query().Get("x"))
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	b, err := GetJSON(context.Background(), srv.Client(), srv.URL+"/api.php?x=1", url.Values{"action": {"query"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(b))
}

func TestPostFormEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "a & b", r.PostForm.Get("filter"))
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := PostForm(context.Background(), nil, srv.URL, url.Values{"filter": {"a & b"}})
	require.NoError(t, err)
}

func TestNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := GetJSON(context.Background(), nil, srv.URL, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Contains(t, se.Error(), "boom")
}

func TestWaitHTTPUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	assert.NoError(t, WaitHTTPUp(srv.URL, time.Second))
}
