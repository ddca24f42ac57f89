package jira

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tiliavir/toggl-tempo/internal/remote"
)

// BaseURL returns the Jira Cloud REST v3 root for a site. domain is either
// the Atlassian subdomain ("acme") or a full URL.
func BaseURL(domain string) string {
	if strings.Contains(domain, "://") {
		return strings.TrimRight(domain, "/")
	}
	return "https://" + domain + ".atlassian.net/rest/api/3"
}

// Client is a Jira Cloud REST client.
type Client struct {
	baseURL string
	api     remote.Client
}

// NewClient creates a client authenticating with an Atlassian account email
// and API token.
func NewClient(baseURL, username, apiToken string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		api: remote.Client{
			HTTP:      httpClient,
			Authorize: remote.BasicAuth(username, apiToken),
			Log:       log,
		},
	}
}

type myselfResponse struct {
	AccountID string `json:"accountId"`
}

type issueResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// CurrentUserID returns the account id of the authenticated user.
func (c *Client) CurrentUserID(ctx context.Context) (string, error) {
	var me myselfResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/myself", &me); err != nil {
		return "", fmt.Errorf("fetching jira account: %w", err)
	}
	if me.AccountID == "" {
		return "", errors.New("jira account has no accountId")
	}
	return me.AccountID, nil
}

// ResolveIssueID returns the numeric id of the issue with the given key.
// A missing issue is reported as *UnknownIssueError.
func (c *Client) ResolveIssueID(ctx context.Context, issueName string) (string, error) {
	var issue issueResponse
	err := c.api.GetJSON(ctx, c.baseURL+"/issue/"+url.PathEscape(issueName), &issue)
	if err != nil {
		var readErr *remote.ReadError
		if errors.As(err, &readErr) && readErr.Status == http.StatusNotFound {
			return "", &UnknownIssueError{Issue: issueName, Err: err}
		}
		return "", fmt.Errorf("fetching issue %s: %w", issueName, err)
	}
	if issue.ID == "" {
		return "", &UnknownIssueError{Issue: issueName}
	}
	return issue.ID, nil
}
