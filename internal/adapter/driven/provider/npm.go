package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*NPM)(nil)

// NPM lists packages maintained by a user. The npm registry has no endpoint
// for listing packages by maintainer, so this adapter shells out to
// `npm search --json` and degrades to an empty list when the npm CLI is not
// installed. Known limitation, inherent to the registry.
type NPM struct {
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
	now      func() time.Time
}

// NewNPM creates the npm adapter using the npm CLI from PATH.
func NewNPM() *NPM {
	return &NPM{
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		now: time.Now,
	}
}

// Name returns the source tag.
func (n *NPM) Name() string { return "npm" }

type npmPackage struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Downloads   int    `json:"downloads"`
}

// Fetch runs an npm maintainer search. Search results carry no timestamps,
// so UpdatedAt is synthesized as the current UTC time.
func (n *NPM) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	if _, err := n.lookPath("npm"); err != nil {
		slog.Warn("npm CLI not found, skipping npm packages", "username", acct.Username())
		return nil, nil
	}

	out, err := n.run(ctx, "npm", "search", "maintainer:"+acct.Username(), "--json")
	if err != nil {
		return nil, fmt.Errorf("running npm search for %s: %w", acct.Username(), err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	var packages []npmPackage
	if err := json.Unmarshal(out, &packages); err != nil {
		return nil, fmt.Errorf("parsing npm search output for %s: %w", acct.Username(), err)
	}

	fetchedAt := n.now().UTC().Format(time.RFC3339)

	var projects []model.Project
	for _, pkg := range packages {
		if pkg.Name == "" {
			continue
		}
		projects = append(projects, model.Project{
			Name:        pkg.Name,
			FullName:    pkg.Name,
			Description: model.FirstSentence(pkg.Description),
			URL:         "https://www.npmjs.com/package/" + pkg.Name,
			Version:     pkg.Version,
			Downloads:   pkg.Downloads,
			UpdatedAt:   fetchedAt,
			Source:      "npm",
		})
	}

	return projects, nil
}
