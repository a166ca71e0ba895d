package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*Packagist)(nil)

// Packagist lists a user's PHP packages: one call for the package name list,
// then one metadata call per package. A failure on a single package skips
// that package only.
type Packagist struct {
	api     *apiClient
	baseURL string
}

// NewPackagist creates the Packagist adapter against packagist.org.
func NewPackagist() *Packagist {
	return &Packagist{
		api:     newAPIClient(),
		baseURL: "https://packagist.org",
	}
}

// NewPackagistWithBaseURL creates an adapter against a custom base URL, for
// tests with an httptest server.
func NewPackagistWithBaseURL(baseURL string) *Packagist {
	return &Packagist{
		api:     newAPIClient(),
		baseURL: baseURL,
	}
}

// Name returns the source tag.
func (p *Packagist) Name() string { return "packagist" }

type packagistUserPackages struct {
	PackageNames []string `json:"packageNames"`
}

type packagistVersion struct {
	Time    string   `json:"time"`
	License []string `json:"license"`
	Source  *struct {
		URL string `json:"url"`
	} `json:"source"`
}

type packagistPackage struct {
	Package struct {
		Description string   `json:"description"`
		Repository  string   `json:"repository"`
		Favers      int      `json:"favers"`
		Keywords    []string `json:"keywords"`
		Downloads   struct {
			Total int `json:"total"`
		} `json:"downloads"`
		Versions map[string]packagistVersion `json:"versions"`
	} `json:"package"`
}

// Fetch lists the user's packages with per-package metadata.
func (p *Packagist) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	var userPackages packagistUserPackages
	listURL := fmt.Sprintf("%s/users/%s/packages.json", p.baseURL, url.PathEscape(acct.Username()))
	if err := p.api.getJSON(ctx, listURL, nil, &userPackages); err != nil {
		return nil, fmt.Errorf("listing packagist packages for %s: %w", acct.Username(), err)
	}

	var projects []model.Project
	for _, fullName := range userPackages.PackageNames {
		var pkg packagistPackage
		pkgURL := fmt.Sprintf("%s/packages/%s.json", p.baseURL, fullName)
		if err := p.api.getJSON(ctx, pkgURL, nil, &pkg); err != nil {
			slog.Warn("skipping packagist package", "package", fullName, "error", err)
			continue
		}

		version, latest := firstVersion(pkg.Package.Versions)

		repoURL := pkg.Package.Repository
		if repoURL == "" && latest.Source != nil {
			repoURL = latest.Source.URL
		}

		name := fullName
		if idx := strings.LastIndex(fullName, "/"); idx >= 0 {
			name = fullName[idx+1:]
		}

		projects = append(projects, model.Project{
			Name:          name,
			FullName:      fullName,
			Description:   model.FirstSentence(pkg.Package.Description),
			URL:           "https://packagist.org/packages/" + fullName,
			Language:      model.Lang("PHP"),
			Downloads:     pkg.Package.Downloads.Total,
			Favers:        pkg.Package.Favers,
			Version:       version,
			Topics:        pkg.Package.Keywords,
			License:       latest.License,
			RepositoryURL: repoURL,
			UpdatedAt:     latest.Time,
			Source:        "packagist",
		})
	}

	return projects, nil
}

// firstVersion picks one representative version entry from the package's
// version map, preferring the most recently released one by its time field.
func firstVersion(versions map[string]packagistVersion) (string, packagistVersion) {
	var (
		bestKey string
		best    packagistVersion
	)
	for key, v := range versions {
		if bestKey == "" || v.Time > best.Time {
			bestKey = key
			best = v
		}
	}
	return bestKey, best
}
