package jira

import (
	"fmt"
	"regexp"
)

// MalformedDescriptionError is returned when a time entry description does
// not start with an issue key.
type MalformedDescriptionError struct {
	Description string
}

func (e *MalformedDescriptionError) Error() string {
	return fmt.Sprintf("no valid issue name found in the description: %q", e.Description)
}

// UnknownIssueError is returned when an issue key cannot be resolved.
type UnknownIssueError struct {
	Issue string
	Err   error
}

func (e *UnknownIssueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown issue %s: %v", e.Issue, e.Err)
	}
	return "unknown issue " + e.Issue
}

func (e *UnknownIssueError) Unwrap() error { return e.Err }

var (
	leadingTokenRe = regexp.MustCompile(`^([^\s\p{Z}\x{FEFF}]+)[\s\p{Z}\x{FEFF}]+`)
	issueKeyRe     = regexp.MustCompile(`^[A-Z\d-]+$`)
)

// ParseIssueName returns the issue key a description starts with, as in
// "PROJ-123 did some work". The key must be followed by whitespace, Unicode
// spaces such as U+00A0 included, and consist only of upper-case letters,
// digits and hyphens.
func ParseIssueName(description string) (string, error) {
	m := leadingTokenRe.FindStringSubmatch(description)
	if m == nil || !issueKeyRe.MatchString(m[1]) {
		return "", &MalformedDescriptionError{Description: description}
	}
	return m[1], nil
}
