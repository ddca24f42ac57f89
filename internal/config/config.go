package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo database

	"github.com/spf13/viper"

	"github.com/Tiliavir/toggl-tempo/internal/tempo"
	"github.com/Tiliavir/toggl-tempo/internal/toggl"
)

// DefaultFile is the dotenv file read from the working directory.
const DefaultFile = ".env.local"

// Keys recognised in the environment and in the dotenv file.
const (
	KeyTogglAPIToken     = "TOGGL_API_TOKEN"
	KeyTogglProjectID    = "TOGGL_PROJECT_ID"
	KeyTogglBaseURL      = "TOGGL_BASE_URL"
	KeyJiraDomain        = "JIRA_DOMAIN"
	KeyJiraUsername      = "JIRA_USERNAME"
	KeyJiraAPIToken      = "JIRA_API_TOKEN"
	KeyTempoAPIToken     = "TEMPO_API_TOKEN"
	KeyTempoBaseURL      = "TEMPO_BASE_URL"
	KeyTempoAttrKey      = "TEMPO_ATTRIBUTE_KEY"
	KeyTempoAttrValue    = "TEMPO_ATTRIBUTE_VALUE"
	KeyTimezone          = "TIMEZONE"
	KeyLogLevel          = "LOG_LEVEL"
	KeyHTTPTimeout       = "HTTP_TIMEOUT"
	defaultHTTPTimeout   = 30 * time.Second
	defaultLogLevelValue = "warn"
)

// TogglKeys are needed by every command that reads time entries.
var TogglKeys = []string{KeyTogglAPIToken}

// PushKeys are needed to push worklogs.
var PushKeys = []string{KeyTogglAPIToken, KeyJiraDomain, KeyJiraUsername, KeyJiraAPIToken, KeyTempoAPIToken}

// ConfigurationError reports a missing or invalid configuration value.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("variable %s is invalid: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("variable %s is not set in the environment", e.Key)
}

// Config is the settings of one invocation. It is built once at startup and
// passed to the components that need it.
type Config struct {
	TogglAPIToken  string
	TogglProjectID *int64
	TogglBaseURL   string

	JiraDomain   string
	JiraUsername string
	JiraAPIToken string

	TempoAPIToken       string
	TempoBaseURL        string
	TempoAttributeKey   string
	TempoAttributeValue string

	// Timezone is the IANA zone used to assign entries to days. Empty = system local.
	Timezone    string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads the dotenv file at path, if present, and the process
// environment. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetDefault(KeyTogglBaseURL, toggl.DefaultBaseURL)
	v.SetDefault(KeyTempoBaseURL, tempo.DefaultBaseURL)
	v.SetDefault(KeyLogLevel, defaultLogLevelValue)
	v.SetDefault(KeyHTTPTimeout, defaultHTTPTimeout.String())

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{
		TogglAPIToken:       v.GetString(KeyTogglAPIToken),
		TogglBaseURL:        v.GetString(KeyTogglBaseURL),
		JiraDomain:          v.GetString(KeyJiraDomain),
		JiraUsername:        v.GetString(KeyJiraUsername),
		JiraAPIToken:        v.GetString(KeyJiraAPIToken),
		TempoAPIToken:       v.GetString(KeyTempoAPIToken),
		TempoBaseURL:        v.GetString(KeyTempoBaseURL),
		TempoAttributeKey:   v.GetString(KeyTempoAttrKey),
		TempoAttributeValue: v.GetString(KeyTempoAttrValue),
		Timezone:            v.GetString(KeyTimezone),
		LogLevel:            v.GetString(KeyLogLevel),
	}

	if raw := strings.TrimSpace(v.GetString(KeyTogglProjectID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ConfigurationError{Key: KeyTogglProjectID, Reason: "must be an integer"}
		}
		cfg.TogglProjectID = &id
	}

	timeout, err := time.ParseDuration(v.GetString(KeyHTTPTimeout))
	if err != nil || timeout <= 0 {
		return nil, &ConfigurationError{Key: KeyHTTPTimeout, Reason: "must be a positive duration such as 30s"}
	}
	cfg.HTTPTimeout = timeout

	if _, err := cfg.Location(); err != nil {
		return nil, &ConfigurationError{Key: KeyTimezone, Reason: err.Error()}
	}
	return cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate returns a *ConfigurationError for the first of keys that is not set.
func (c *Config) Validate(keys ...string) error {
	values := map[string]string{
		KeyTogglAPIToken: c.TogglAPIToken,
		KeyJiraDomain:    c.JiraDomain,
		KeyJiraUsername:  c.JiraUsername,
		KeyJiraAPIToken:  c.JiraAPIToken,
		KeyTempoAPIToken: c.TempoAPIToken,
	}
	for _, k := range keys {
		if strings.TrimSpace(values[k]) == "" {
			return &ConfigurationError{Key: k}
		}
	}
	return nil
}

// Location returns the time zone used to assign entries to days.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// TempoAttributes returns the work attributes to attach to created worklogs.
func (c *Config) TempoAttributes() []tempo.Attribute {
	if c.TempoAttributeKey == "" {
		return nil
	}
	return []tempo.Attribute{{Key: c.TempoAttributeKey, Value: c.TempoAttributeValue}}
}
