package tempo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/remote"
)

// DefaultBaseURL is the Tempo Cloud REST API v4 root.
const DefaultBaseURL = "https://api.tempo.io/4"

// Attribute is a Tempo work attribute attached to every created worklog.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Client is a Tempo worklog client.
type Client struct {
	baseURL    string
	api        remote.Client
	attributes []Attribute
}

// NewClient creates a client that sends apiToken as a bearer token. The
// underlying transport is taken from ctx's oauth2.HTTPClient value if set.
func NewClient(ctx context.Context, baseURL, apiToken string, attributes []Attribute, log *slog.Logger) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken, TokenType: "Bearer"})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		api: remote.Client{
			HTTP: oauth2.NewClient(ctx, src),
			Log:  log,
		},
		attributes: attributes,
	}
}

type worklogPage struct {
	Metadata struct {
		Count int    `json:"count"`
		Next  string `json:"next"`
	} `json:"metadata"`
	Results *[]worklog `json:"results"` // nil when the key is missing
}

type worklog struct {
	TempoWorklogID   int64  `json:"tempoWorklogId"`
	StartDate        string `json:"startDate"`
	StartTime        string `json:"startTime"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
	Issue            struct {
		ID json.Number `json:"id"`
	} `json:"issue"`
}

type worklogPayload struct {
	AuthorAccountID  string      `json:"authorAccountId"`
	StartDate        string      `json:"startDate"`
	StartTime        string      `json:"startTime"`
	TimeSpentSeconds int64       `json:"timeSpentSeconds"`
	IssueID          json.Number `json:"issueId"`
	Attributes       []Attribute `json:"attributes,omitempty"`
}

// FetchWorklogs returns all worklogs of userID on day ("YYYY-MM-DD"),
// following pagination links.
func (c *Client) FetchWorklogs(ctx context.Context, day, userID string) ([]model.WorklogEntry, error) {
	q := url.Values{}
	q.Set("from", day)
	q.Set("to", day)
	endpoint := c.baseURL + "/worklogs/user/" + url.PathEscape(userID) + "?" + q.Encode()

	var all []model.WorklogEntry
	for endpoint != "" {
		var page worklogPage
		if err := c.api.GetJSON(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("fetching worklogs for %s: %w", day, err)
		}
		if page.Results == nil {
			return nil, fmt.Errorf("fetching worklogs for %s: %w", day,
				&remote.ReadError{URL: endpoint, Err: errors.New("no results in response")})
		}
		for _, w := range *page.Results {
			all = append(all, model.WorklogEntry{
				StartTime:        w.StartTime,
				TimeSpentSeconds: w.TimeSpentSeconds,
				IssueID:          w.Issue.ID.String(),
			})
		}
		endpoint = page.Metadata.Next
	}
	return all, nil
}

// CreateWorklog creates a worklog for userID from info.
func (c *Client) CreateWorklog(ctx context.Context, userID string, info model.RecordInfo) error {
	payload := worklogPayload{
		AuthorAccountID:  userID,
		StartDate:        info.Day,
		StartTime:        info.StartTime,
		TimeSpentSeconds: info.TimeSpentSeconds,
		IssueID:          json.Number(info.IssueID),
		Attributes:       c.attributes,
	}
	if err := c.api.PostJSON(ctx, c.baseURL+"/worklogs", payload); err != nil {
		return fmt.Errorf("creating worklog %s %s: %w", info.Day, info.StartTime, err)
	}
	return nil
}
