package transport

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

	pkgerrors "github.com/kindergarten/rollcall/pkg/errors"
	"github.com/kindergarten/rollcall/pkg/logging"
)

type failingTokens struct{}

func (failingTokens) Token() (string, error) { return "", errors.New("keyring locked") }

func TestNewValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		_, err := New(raw)
		assert.True(t, pkgerrors.IsValidationError(err), "base url %q", raw)
	}

	c, err := New("http://example.com/v1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/v1/", c.BaseURL())
}

func TestClientURL(t *testing.T) {
	c, err := New("https://kg.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://kg.example.com/api/children/?group_id=3&limit=200",
		c.URL("api/children/", url.Values{"group_id": {"3"}, "limit": {"200"}}))
	assert.Equal(t, "https://kg.example.com/api/auth/me", c.URL("/api/auth/me", nil))
}

func TestClientGet(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1}]`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(StaticToken("secret")), WithUserAgent("rollcall-test"))
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "api/groups/", url.Values{"teacher_id": {"5"}})
	require.NoError(t, err)

	var out []struct {
		ID int `json:"id"`
	}
	require.NoError(t, DecodeResponse(resp, &out))
	assert.Equal(t, 1, out[0].ID)

	require.NotNil(t, got)
	assert.Equal(t, "/api/groups/", got.URL.Path)
	assert.Equal(t, "5", got.URL.Query().Get("teacher_id"))
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "rollcall-test", got.Header.Get("User-Agent"))
	assert.NotEmpty(t, got.Header.Get(RequestIDHeader))
}

func TestClientRequestIDFromContext(t *testing.T) {
	var id string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx := logging.WithRequestID(context.Background(), "req-42")
	resp, err := c.Get(ctx, "ping", nil)
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Equal(t, "req-42", id)
}

func TestClientWithoutTokenSendsNoAuthorization(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(StaticToken("")))
	require.NoError(t, err)
	resp, err := c.Get(context.Background(), "x", nil)
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Empty(t, authHeader)
}

func TestClientTokenSourceError(t *testing.T) {
	c, err := New("http://127.0.0.1:1", WithTokenSource(failingTokens{}))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "x", nil)
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestClientPostJSON(t *testing.T) {
	var (
		body        string
		contentType string
		idem        string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		contentType = r.Header.Get("Content-Type")
		idem = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.PostJSON(context.Background(), "api/attendance/bulk",
		map[string]int{"group_id": 3}, http.Header{"Idempotency-Key": {"k1"}})
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, DecodeResponse(resp, &out))
	assert.True(t, out.OK)
	assert.JSONEq(t, `{"group_id":3}`, body)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "k1", idem)
}

func TestClientPostForm(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	resp, err := c.PostForm(context.Background(), "api/auth/token", url.Values{"username": {"anna"}, "password": {"pw"}})
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))

	assert.Equal(t, "anna", form.Get("username"))
	assert.Equal(t, "pw", form.Get("password"))
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Get(ctx, "slow", nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsTimeout(err))
}
