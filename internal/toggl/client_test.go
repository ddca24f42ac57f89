package toggl_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/remote"
	"github.com/Tiliavir/toggl-tempo/internal/toggl"
)

const entriesJSON = `[
  {"id": 2, "start": "2023-12-05T10:00:00+00:00", "stop": null, "duration": -1701770400, "description": "PROJ-2 running", "project_id": 7},
  {"id": 1, "start": "2023-12-05T09:00:00+00:00", "stop": "2023-12-05T10:00:00+00:00", "duration": 3600, "description": "PROJ-1 work", "project_id": 8},
  {"id": 3, "start": "2023-12-05T11:00:00+00:00", "stop": "2023-12-05T11:30:00+00:00", "duration": 1800, "description": "no project", "project_id": null}
]`

func TestTimeEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/time_entries", r.URL.Path)
		assert.Equal(t, "2023-12-01T00:00:00Z", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("end_date"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "secret", user)
		assert.Equal(t, "api_token", pass)
		_, _ = w.Write([]byte(entriesJSON))
	}))
	defer srv.Close()

	c := toggl.NewClient(srv.URL+"/", "secret", srv.Client(), nil)
	from := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	got, err := c.TimeEntries(context.Background(), from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, got, 3)

	stop := time.Date(2023, 12, 5, 10, 0, 0, 0, time.UTC)
	seven, eight := int64(7), int64(8)
	want := []model.RawEntry{
		{Start: time.Date(2023, 12, 5, 10, 0, 0, 0, time.UTC), Description: "PROJ-2 running", ProjectID: &seven},
		{Start: time.Date(2023, 12, 5, 9, 0, 0, 0, time.UTC), Stop: &stop, Description: "PROJ-1 work", ProjectID: &eight},
	}
	opt := cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got[:2], opt); diff != "" {
		t.Errorf("TimeEntries mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got[2].ProjectID)
}

func TestTimeEntriesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := toggl.NewClient(srv.URL, "bad", srv.Client(), nil)
	_, err := c.TimeEntries(context.Background(), time.Now(), time.Now())

	var readErr *remote.ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, http.StatusForbidden, readErr.Status)
}

func TestCurrent(t *testing.T) {
	body := `{"id": 2, "start": "2023-12-05T10:00:00Z", "stop": null, "description": "PROJ-2 running"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/time_entries/current", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := toggl.NewClient(srv.URL, "secret", srv.Client(), nil)
	got, err := c.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PROJ-2 running", got.Description)
	assert.Nil(t, got.Stop)

	body = `null`
	got, err = c.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFilterProject(t *testing.T) {
	seven, eight := int64(7), int64(8)
	entries := []model.RawEntry{
		{Description: "a", ProjectID: &seven},
		{Description: "b", ProjectID: &eight},
		{Description: "c"},
	}

	assert.Len(t, toggl.FilterProject(entries, nil), 3)

	got := toggl.FilterProject(entries, &seven)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Description)
}
