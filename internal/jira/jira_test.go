package jira_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggl-tempo/internal/jira"
	"github.com/Tiliavir/toggl-tempo/internal/remote"
)

func TestParseIssueName(t *testing.T) {
	tests := []struct {
		description string
		want        string
		wantErr     bool
	}{
		{"PROJ-123 did some work", "PROJ-123", false},
		{"ABC-1\treview", "ABC-1", false},
		{"X1  double space", "X1", false},
		{"PROJ-123\u00a0no-break space", "PROJ-123", false},
		{"PROJ-7\u2003em space", "PROJ-7", false},
		{"PROJ-123", "", true},          // no trailing whitespace
		{"proj-123 lower case", "", true}, // lower case
		{"PROJ_123 underscore", "", true},
		{"PROJ-123: colon", "", true},
		{" PROJ-123 leading space", "", true},
		{"", "", true},
		{"meeting with team", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := jira.ParseIssueName(tt.description)
			if tt.wantErr {
				var malformed *jira.MalformedDescriptionError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, tt.description, malformed.Description)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://acme.atlassian.net/rest/api/3", jira.BaseURL("acme"))
	assert.Equal(t, "http://localhost:8080/rest/api/3", jira.BaseURL("http://localhost:8080/rest/api/3/"))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/myself", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "me@example.com", user)
		assert.Equal(t, "tok", pass)
		_, _ = w.Write([]byte(`{"accountId":"acc-1","displayName":"Me"}`))
	})
	mux.HandleFunc("/issue/PROJ-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"10001","key":"PROJ-1"}`))
	})
	mux.HandleFunc("/issue/EMPTY-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/issue/BROKEN-1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentUserID(t *testing.T) {
	srv := newServer(t)
	c := jira.NewClient(srv.URL, "me@example.com", "tok", srv.Client(), nil)

	id, err := c.CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)
}

func TestResolveIssueID(t *testing.T) {
	srv := newServer(t)
	c := jira.NewClient(srv.URL, "me@example.com", "tok", srv.Client(), nil)
	ctx := context.Background()

	id, err := c.ResolveIssueID(ctx, "PROJ-1")
	require.NoError(t, err)
	assert.Equal(t, "10001", id)

	var unknown *jira.UnknownIssueError
	_, err = c.ResolveIssueID(ctx, "NOPE-9")
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "NOPE-9", unknown.Issue)

	_, err = c.ResolveIssueID(ctx, "EMPTY-1")
	require.True(t, errors.As(err, &unknown))

	_, err = c.ResolveIssueID(ctx, "BROKEN-1")
	require.Error(t, err)
	assert.False(t, errors.As(err, &unknown))
	var readErr *remote.ReadError
	assert.True(t, errors.As(err, &readErr))
}

type countingResolver struct {
	calls map[string]int
}

func (r *countingResolver) ResolveIssueID(_ context.Context, name string) (string, error) {
	r.calls[name]++
	if name == "BAD-1" {
		return "", &jira.UnknownIssueError{Issue: name}
	}
	return "id-" + name, nil
}

func TestCachingResolver(t *testing.T) {
	next := &countingResolver{calls: map[string]int{}}
	r := jira.NewCachingResolver(next)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := r.ResolveIssueID(ctx, "PROJ-1")
		require.NoError(t, err)
		assert.Equal(t, "id-PROJ-1", id)
	}
	assert.Equal(t, 1, next.calls["PROJ-1"])

	// Failures are not cached.
	for i := 0; i < 2; i++ {
		_, err := r.ResolveIssueID(ctx, "BAD-1")
		assert.Error(t, err)
	}
	assert.Equal(t, 2, next.calls["BAD-1"])
}
