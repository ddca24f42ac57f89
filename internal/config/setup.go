package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
)

// Values are the answers collected by the setup wizard.
type Values struct {
	TogglAPIToken  string
	TogglProjectID string
	JiraDomain     string
	JiraUsername   string
	JiraAPIToken   string
	TempoAPIToken  string
}

// envTemplate is the annotated dotenv file written by setup. Lines starting
// with # are comments.
var envTemplate = template.Must(template.New("env").Parse(`# toggl-tempo configuration
# Environment variables with the same names take precedence over this file.

# https://track.toggl.com/profile
TOGGL_API_TOKEN={{.TogglAPIToken}}
{{- if .TogglProjectID}}
# Only entries of this Toggl project are used.
TOGGL_PROJECT_ID={{.TogglProjectID}}
{{- end}}

# Atlassian subdomain, e.g. "acme" for acme.atlassian.net
JIRA_DOMAIN={{.JiraDomain}}
JIRA_USERNAME={{.JiraUsername}}
# https://id.atlassian.com/manage-profile/security/api-tokens
JIRA_API_TOKEN={{.JiraAPIToken}}
TEMPO_API_TOKEN={{.TempoAPIToken}}

# Optional work attribute attached to every pushed worklog.
# TEMPO_ATTRIBUTE_KEY=_Leistungstyp_
# TEMPO_ATTRIBUTE_VALUE=TechnischeUmsetzung

# IANA time zone used to assign entries to days. Empty = system local.
# TIMEZONE=Europe/Zurich
`))

// Render returns the dotenv file content for vals.
func Render(vals Values) (string, error) {
	var buf bytes.Buffer
	if err := envTemplate.Execute(&buf, vals); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Save writes vals to path. An existing file is never overwritten.
func Save(path string, vals Values) error {
	content, err := Render(vals)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("'%s' already exists; delete it before running setup again", path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// RunSetup asks for the credentials interactively and writes them to path.
func RunSetup(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("'%s' already exists; delete it before running setup again", path)
	}

	var vals Values
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Toggl API Token").
				Description("https://track.toggl.com/profile").
				EchoMode(huh.EchoModePassword).
				Value(&vals.TogglAPIToken).
				Validate(required("Toggl API token")),
			huh.NewInput().
				Title("Toggl Project Id (optional)").
				Value(&vals.TogglProjectID).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseInt(s, 10, 64); err != nil {
						return fmt.Errorf("project id must be a number")
					}
					return nil
				}),
		).Title("Toggl"),

		huh.NewGroup(
			huh.NewInput().
				Title("Jira Subdomain").
				Placeholder("acme").
				Value(&vals.JiraDomain).
				Validate(required("Jira subdomain")),
			huh.NewInput().
				Title("Jira Username").
				Placeholder("you@company.com").
				Value(&vals.JiraUsername).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("must be a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Jira API Token").
				EchoMode(huh.EchoModePassword).
				Value(&vals.JiraAPIToken).
				Validate(required("Jira API token")),
		).Title("Jira"),

		huh.NewGroup(
			huh.NewInput().
				Title("Tempo API Token").
				Description("Tempo > Settings > API Integration").
				EchoMode(huh.EchoModePassword).
				Value(&vals.TempoAPIToken).
				Validate(required("Tempo API token")),
		).Title("Tempo"),
	)

	if err := form.Run(); err != nil {
		return err
	}
	return Save(path, vals)
}
