package config

import (
	"net/url"
	"os"
	"strings"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "EQUIBULL"

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv    SettingSource = "env"
	SourceConfig SettingSource = "config" // config file or built-in default
)

// SettingStatus describes one effective setting for the status command.
type SettingStatus struct {
	Name   string        `json:"name"`
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// Describe returns the settings an operator usually wants to check, with
// credentials embedded in URLs masked.
func Describe(cfg *Config) []SettingStatus {
	return []SettingStatus{
		describe("Backend URL", "backend.url", maskURL(cfg.Backend.URL)),
		describe("News provider", "news.provider", cfg.News.Provider),
		describe("Logging level", "logging.level", cfg.Logging.Level),
		describe("Logging format", "logging.format", cfg.Logging.Format),
	}
}

// EnvVar returns the environment variable that overrides a dotted key,
// e.g. "backend.url" → "EQUIBULL_BACKEND_URL".
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func describe(name, key, value string) SettingStatus {
	status := SettingStatus{Name: name, Key: key, Value: value, Source: SourceConfig}
	if os.Getenv(EnvVar(key)) != "" {
		status.Source = SourceEnv
	}
	return status
}

// maskURL hides the password part of a URL's userinfo.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
