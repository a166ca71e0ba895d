package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*PyPI)(nil)

// PyPI lists packages authored by a user. PyPI has no per-user package
// endpoint, so the adapter queries the simple-index author search and then
// fetches per-package metadata, keeping only packages whose author matches.
// Known limitation: the search surface is best-effort, not exhaustive.
type PyPI struct {
	api       *apiClient
	searchURL string
	baseURL   string
}

// NewPyPI creates the PyPI adapter against pypi.org.
func NewPyPI() *PyPI {
	return &PyPI{
		api:       newAPIClient(),
		searchURL: "https://pypi.org/simple/",
		baseURL:   "https://pypi.org/pypi",
	}
}

// NewPyPIWithBaseURL creates a PyPI adapter with custom endpoints, for tests.
func NewPyPIWithBaseURL(searchURL, baseURL string) *PyPI {
	return &PyPI{
		api:       newAPIClient(),
		searchURL: searchURL,
		baseURL:   baseURL,
	}
}

// Name returns the source tag.
func (p *PyPI) Name() string { return "pypi" }

type pypiSearchResult struct {
	Results []struct {
		Name string `json:"name"`
	} `json:"results"`
}

type pypiPackage struct {
	Info struct {
		Author     string `json:"author"`
		Summary    string `json:"summary"`
		PackageURL string `json:"package_url"`
		Version    string `json:"version"`
		Downloads  struct {
			LastMonth int `json:"last_month"`
		} `json:"downloads"`
	} `json:"info"`
	Releases map[string][]struct{} `json:"releases"`
}

// Fetch searches for candidate packages and keeps those authored by the user.
// Per-package metadata failures skip that package only.
func (p *PyPI) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	headers := map[string]string{"Accept": "application/vnd.pypi.simple.v1+json"}

	var search pypiSearchResult
	searchURL := fmt.Sprintf("%s?q=author%%3A%s", p.searchURL, url.QueryEscape(acct.Username()))
	if err := p.api.getJSON(ctx, searchURL, headers, &search); err != nil {
		return nil, fmt.Errorf("searching pypi packages for %s: %w", acct.Username(), err)
	}

	var projects []model.Project
	for _, candidate := range search.Results {
		var pkg pypiPackage
		pkgURL := fmt.Sprintf("%s/%s/json", p.baseURL, url.PathEscape(candidate.Name))
		if err := p.api.getJSON(ctx, pkgURL, nil, &pkg); err != nil {
			slog.Warn("skipping pypi package", "package", candidate.Name, "error", err)
			continue
		}

		if pkg.Info.Author != acct.Username() {
			continue
		}

		pageURL := pkg.Info.PackageURL
		if pageURL == "" {
			pageURL = fmt.Sprintf("https://pypi.org/project/%s/", candidate.Name)
		}

		projects = append(projects, model.Project{
			Name:        candidate.Name,
			FullName:    candidate.Name,
			Description: model.FirstSentence(pkg.Info.Summary),
			URL:         pageURL,
			Version:     pkg.Info.Version,
			Downloads:   pkg.Info.Downloads.LastMonth,
			UpdatedAt:   latestRelease(pkg.Releases),
			Source:      "pypi",
		})
	}

	return projects, nil
}

// latestRelease returns the lexically greatest release key, matching how the
// registry orders its release map keys for this use.
func latestRelease(releases map[string][]struct{}) string {
	latest := ""
	for version := range releases {
		if version > latest {
			latest = version
		}
	}
	return latest
}
