package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_DecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"42","email":"demo@bmic.ai","avatar":"https://x/a.png"},"token":"tkn"}`))
	}))
	defer srv.Close()

	p, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LookupID("42"), p.User.ID)
	assert.Equal(t, "demo@bmic.ai", p.User.Email)
	assert.Equal(t, "https://x/a.png", p.User.Avatar)
	assert.Equal(t, "tkn", p.Token)
}

func TestLookup_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErrs []error
	}{
		{"not found", http.StatusNotFound, []error{ErrRejected}},
		{"server error", http.StatusInternalServerError, []error{ErrRejected}},
		{"unauthorized", http.StatusUnauthorized, []error{ErrRejected, ErrUnauthorized}},
		{"forbidden", http.StatusForbidden, []error{ErrRejected, ErrUnauthorized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
			require.Error(t, err)
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
			assert.NotErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestLookup_MalformedBodyIsUnavailable(t *testing.T) {
	for _, body := range []string{"<html>oops</html>", `{"token":`, ""} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
		srv.Close()

		require.Error(t, err, body)
		assert.ErrorIs(t, err, ErrUnavailable, body)
	}
}

func TestLookup_IncompletePayloadIsReturned(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		email string
		token string
	}{
		{"no user", `{"token":"t"}`, "", "t"},
		{"null body", `null`, "", ""},
		{"empty user", `{"user":{},"token":"t"}`, "", "t"},
		{"no token", `{"user":{"email":"a@x.com"}}`, "a@x.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tt.email, p.User.Email)
			assert.Equal(t, tt.token, p.Token)
		})
	}
}

func TestLookup_WrongShapeIsRejected(t *testing.T) {
	for _, body := range []string{`{"user":"a@x.com","token":"t"}`, `[1,2]`, `{"token":5}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
		srv.Close()

		assert.ErrorIs(t, err, ErrRejected, body)
		assert.NotErrorIs(t, err, ErrUnavailable, body)
	}
}

func TestLookupID_AcceptsStringsAndNumbers(t *testing.T) {
	tests := []struct {
		body string
		want LookupID
	}{
		{`{"user":{"id":"abc","email":"a@x.com"},"token":"t"}`, "abc"},
		{`{"user":{"id":1,"email":"a@x.com"},"token":"t"}`, "1"},
		{`{"user":{"id":1.5e3,"email":"a@x.com"},"token":"t"}`, "1.5e3"},
		{`{"user":{"id":null,"email":"a@x.com"},"token":"t"}`, ""},
		{`{"user":{"email":"a@x.com"},"token":"t"}`, ""},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(tt.body))
		}))

		p, err := NewHTTPLookupClient(srv.URL, time.Second).Lookup(context.Background())
		srv.Close()

		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.want, p.User.ID, tt.body)
	}
}

func TestLookup_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLookupClient(url, time.Second).Lookup(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestLookup_HonorsContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPLookupClient(srv.URL, 0).Lookup(ctx)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewHTTPLookupClient_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultLookupURL, NewHTTPLookupClient("", 0).URL())
}

func TestPing(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c := NewHTTPLookupClient(srv.URL, time.Second)
	require.NoError(t, c.Ping(context.Background()))

	status.Store(http.StatusNotFound)
	require.NoError(t, c.Ping(context.Background()))

	status.Store(http.StatusBadGateway)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}
