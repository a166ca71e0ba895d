// Package config loads application configuration from environment variables.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// ServiceAccount holds the environment-sourced credential fields for one
// external service. All fields are optional; a service with no non-empty
// field is simply not queried.
type ServiceAccount struct {
	Username string `env:"USERNAME"`
	Token    string `env:"TOKEN"`
	Email    string `env:"EMAIL"`
}

// ThemeConfig carries the color tokens substituted into the rendered page.
type ThemeConfig struct {
	PrimaryColor    string `env:"PRIMARY_COLOR, default=#2563eb"`
	SecondaryColor  string `env:"SECONDARY_COLOR, default=#7c3aed"`
	BackgroundColor string `env:"BACKGROUND_COLOR, default=#ffffff"`
	TextColor       string `env:"TEXT_COLOR, default=#1f2937"`
	FontFamily      string `env:"FONT_FAMILY, default=Inter, sans-serif"`
}

// Config holds the application configuration, constructed once at startup and
// passed explicitly to the account store and each adapter.
type Config struct {
	GitHub      ServiceAccount `env:", prefix=GITHUB_"`
	GitLab      ServiceAccount `env:", prefix=GITLAB_"`
	NPM         ServiceAccount `env:", prefix=NPM_"`
	PyPI        ServiceAccount `env:", prefix=PYPI_"`
	DockerHub   ServiceAccount `env:", prefix=DOCKERHUB_"`
	HuggingFace ServiceAccount `env:", prefix=HUGGINGFACE_"`
	Packagist   ServiceAccount `env:", prefix=PACKAGIST_"`

	OutputDir      string `env:"DEVFOLIO_OUTPUT_DIR, default=portfolio"`
	AccountsFile   string `env:"DEVFOLIO_ACCOUNTS_FILE, default=config/accounts.toml"`
	IncludePrivate bool   `env:"DEVFOLIO_INCLUDE_PRIVATE, default=false"`
	Template       string `env:"DEVFOLIO_TEMPLATE, default=default"`
	ListenHost     string `env:"DEVFOLIO_LISTEN_HOST, default=127.0.0.1"`

	Theme ThemeConfig `env:", prefix=DEVFOLIO_THEME_"`
	Mail  MailConfig
}

// Load reads configuration from environment variables and returns a Config.
// Account credentials are all optional; providers with no username are
// skipped at aggregation time with a diagnostic.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return &cfg, nil
}

// AccountEnv returns the environment-sourced credential layer as a
// service -> field -> value mapping, keyed by source tag. Empty fields are
// omitted so they do not shadow file-sourced values.
func (c *Config) AccountEnv() map[string]map[string]string {
	services := map[string]ServiceAccount{
		"github":      c.GitHub,
		"gitlab":      c.GitLab,
		"npm":         c.NPM,
		"pypi":        c.PyPI,
		"dockerhub":   c.DockerHub,
		"huggingface": c.HuggingFace,
		"packagist":   c.Packagist,
	}

	env := make(map[string]map[string]string, len(services))
	for name, acct := range services {
		fields := map[string]string{}
		if acct.Username != "" {
			fields["username"] = acct.Username
		}
		if acct.Token != "" {
			fields["token"] = acct.Token
		}
		if acct.Email != "" {
			fields["email"] = acct.Email
		}
		if len(fields) > 0 {
			env[name] = fields
		}
	}
	return env
}
