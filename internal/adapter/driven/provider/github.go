package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*GitHub)(nil)

// GitHub lists a user's non-fork repositories via the GitHub REST API.
// Transport stack: httpcache (ETag conditional requests) wrapped by
// go-github-ratelimit (sleeps on secondary rate limits) under go-github.
type GitHub struct {
	base           *gh.Client
	includePrivate bool
}

// NewGitHub creates the GitHub adapter. When includePrivate is set and the
// account carries a token, repositories are listed through the authenticated
// endpoint so private repos appear in the result.
func NewGitHub(includePrivate bool) *GitHub {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	return &GitHub{
		base:           gh.NewClient(rateLimitClient),
		includePrivate: includePrivate,
	}
}

// NewGitHubWithHTTPClient creates a GitHub adapter against a custom base URL.
// Intended for tests with an httptest server.
func NewGitHubWithHTTPClient(httpClient *http.Client, baseURL string, includePrivate bool) (*GitHub, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &GitHub{
		base:           client,
		includePrivate: includePrivate,
	}, nil
}

// Name returns the source tag.
func (g *GitHub) Name() string { return "github" }

// Fetch lists owner-type repositories sorted by update time, excluding forks,
// and handles pagination via the response's NextPage cursor.
func (g *GitHub) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	client := g.base
	if token := acct.Token(); token != "" {
		client = client.WithAuthToken(token)
	}

	var projects []model.Project
	page := 0

	for {
		var (
			repos []*gh.Repository
			resp  *gh.Response
			err   error
		)

		if g.includePrivate && acct.Token() != "" {
			opts := &gh.RepositoryListByAuthenticatedUserOptions{
				Type:        "owner",
				Sort:        "updated",
				ListOptions: gh.ListOptions{PerPage: 100, Page: page},
			}
			repos, resp, err = client.Repositories.ListByAuthenticatedUser(ctx, opts)
		} else {
			opts := &gh.RepositoryListByUserOptions{
				Type:        "owner",
				Sort:        "updated",
				ListOptions: gh.ListOptions{PerPage: 100, Page: page},
			}
			repos, resp, err = client.Repositories.ListByUser(ctx, acct.Username(), opts)
		}

		if err != nil {
			return nil, mapGitHubError(resp, acct.Username(), err)
		}

		for _, repo := range repos {
			if repo.GetFork() {
				continue
			}
			projects = append(projects, mapRepository(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	return projects, nil
}

// mapRepository converts a go-github Repository to the normalized record.
// Timestamps are formatted back to GitHub's native ISO-8601 form.
func mapRepository(repo *gh.Repository) model.Project {
	var license []string
	if spdx := repo.GetLicense().GetSPDXID(); spdx != "" {
		license = []string{spdx}
	}

	return model.Project{
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: model.FirstSentence(repo.GetDescription()),
		URL:         repo.GetHTMLURL(),
		Language:    model.Lang(repo.GetLanguage()),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Topics:      repo.Topics,
		License:     license,
		CreatedAt:   repo.GetCreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   repo.GetUpdatedAt().UTC().Format(time.RFC3339),
		Source:      "github",
	}
}

// mapGitHubError folds go-github errors into the shared taxonomy so the
// aggregator treats 404 as "no data" and 403 as a credential problem.
func mapGitHubError(resp *gh.Response, username string, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("github user %s: %w", username, driven.ErrNotFound)
		case http.StatusForbidden:
			return fmt.Errorf("github user %s: %w", username, driven.ErrForbidden)
		}
	}
	return fmt.Errorf("listing github repositories for %s: %w", username, err)
}
