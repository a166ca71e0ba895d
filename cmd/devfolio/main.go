package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/devfoliohq/devfolio/internal/adapter/driven/accounts"
	"github.com/devfoliohq/devfolio/internal/adapter/driven/jsonstore"
	"github.com/devfoliohq/devfolio/internal/adapter/driven/provider"
	"github.com/devfoliohq/devfolio/internal/application"
	"github.com/devfoliohq/devfolio/internal/config"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
	"github.com/devfoliohq/devfolio/internal/render"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Load configuration (all credentials optional).
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"output_dir", cfg.OutputDir,
		"accounts_file", cfg.AccountsFile,
		"template", cfg.Template,
	)

	// 3. Open the layered account store (env over file).
	store, err := accounts.New(cfg.AccountsFile, cfg.AccountEnv())
	if err != nil {
		return err
	}

	// 4. Dispatch subcommands; the default action is a full aggregation run.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			return initAccountsFile(cfg.AccountsFile)
		case "set-account":
			return setAccount(store, os.Args[2:])
		default:
			return fmt.Errorf("unknown command %q (expected init, set-account, or no command)", os.Args[1])
		}
	}

	return aggregate(ctx, cfg, store)
}

// aggregate runs one full pass over all providers, persists the portfolio
// documents, and renders the static site.
func aggregate(ctx context.Context, cfg *config.Config, store driven.AccountStore) error {
	agg := application.NewAggregator(provider.Registry(cfg), store)
	doc := agg.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	pstore := jsonstore.New(cfg.OutputDir)
	if err := pstore.Save(doc, usernamesBySource(store)); err != nil {
		return err
	}
	slog.Info("portfolio saved", "dir", cfg.OutputDir, "projects", doc.Stats.TotalProjects)

	renderer := render.New(cfg.OutputDir, cfg.Template, cfg.Theme)
	if err := renderer.Render(doc); err != nil {
		return err
	}
	slog.Info("portfolio rendered", "path", filepath.Join(cfg.OutputDir, "index.html"))

	return nil
}

// usernamesBySource maps each configured service to its username for the
// user-portal split.
func usernamesBySource(store driven.AccountStore) map[string]string {
	out := map[string]string{}
	for service, fields := range store.Resolve() {
		if username := fields["username"]; username != "" {
			out[service] = username
		}
	}
	return out
}

// setAccount handles `devfolio set-account <service> <field> <value>`.
func setAccount(store driven.AccountStore, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: devfolio set-account <service> <field> <value>")
	}
	if err := store.Update(args[0], map[string]string{args[1]: args[2]}); err != nil {
		return err
	}
	slog.Info("account updated", "service", args[0], "field", args[1])
	return nil
}

// defaultAccountsTOML seeds a fresh accounts file with placeholders for every
// supported service.
const defaultAccountsTOML = `# Credentials for development platform accounts.
# Environment variables (GITHUB_USERNAME, GITHUB_TOKEN, ...) override these values.

[github]
username = ""
token = "" # Generate at: https://github.com/settings/tokens

[gitlab]
username = ""
token = "" # Create at: https://gitlab.com/-/profile/personal_access_tokens

[npm]
username = ""
email = ""

[pypi]
username = ""

[dockerhub]
username = ""

[huggingface]
username = ""
token = "" # Create at: https://huggingface.co/settings/tokens

[packagist]
username = ""
`

// initAccountsFile creates the accounts file with placeholder entries.
// An existing file is left untouched.
func initAccountsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("accounts file already exists at %s, use set-account to modify it", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating accounts directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultAccountsTOML), 0o600); err != nil {
		return fmt.Errorf("writing accounts file: %w", err)
	}

	slog.Info("accounts file created", "path", path)
	return nil
}
