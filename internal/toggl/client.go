package toggl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/remote"
)

// DefaultBaseURL is the Toggl Track API v9 root.
const DefaultBaseURL = "https://api.track.toggl.com/api/v9"

// Client is a read-only Toggl Track API client.
type Client struct {
	baseURL string
	api     remote.Client
}

// NewClient creates a client authenticating with a Toggl API token.
func NewClient(baseURL, apiToken string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		api: remote.Client{
			HTTP:      httpClient,
			Authorize: remote.BasicAuth(apiToken, "api_token"),
			Log:       log,
		},
	}
}

// timeEntry is the subset of the Toggl time entry resource we use.
type timeEntry struct {
	ID          int64      `json:"id"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
}

func (e timeEntry) raw() model.RawEntry {
	return model.RawEntry{
		Start:       e.Start,
		Stop:        e.Stop,
		Description: e.Description,
		ProjectID:   e.ProjectID,
	}
}

// TimeEntries fetches the current user's entries starting in [from, to).
func (c *Client) TimeEntries(ctx context.Context, from, to time.Time) ([]model.RawEntry, error) {
	q := url.Values{}
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))
	endpoint := c.baseURL + "/me/time_entries?" + q.Encode()

	var entries []timeEntry
	if err := c.api.GetJSON(ctx, endpoint, &entries); err != nil {
		return nil, fmt.Errorf("fetching time entries: %w", err)
	}

	out := make([]model.RawEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.raw())
	}
	return out, nil
}

// Current returns the running time entry, or nil if no timer is running.
func (c *Client) Current(ctx context.Context) (*model.RawEntry, error) {
	var e *timeEntry
	if err := c.api.GetJSON(ctx, c.baseURL+"/me/time_entries/current", &e); err != nil {
		return nil, fmt.Errorf("fetching current time entry: %w", err)
	}
	if e == nil {
		return nil, nil
	}
	raw := e.raw()
	return &raw, nil
}

// FilterProject keeps only entries of the given project. A nil projectID
// keeps everything.
func FilterProject(entries []model.RawEntry, projectID *int64) []model.RawEntry {
	if projectID == nil {
		return entries
	}
	var out []model.RawEntry
	for _, e := range entries {
		if e.ProjectID != nil && *e.ProjectID == *projectID {
			out = append(out, e)
		}
	}
	return out
}
