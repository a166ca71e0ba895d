package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*GitLab)(nil)

// GitLab lists a user's non-fork projects. The API exposes no direct
// username-to-projects endpoint, so fetching is a two-step: resolve the
// numeric user ID, then list that user's projects by last activity.
type GitLab struct {
	api     *apiClient
	baseURL string
}

// NewGitLab creates the GitLab adapter against gitlab.com.
func NewGitLab() *GitLab {
	return &GitLab{
		api:     newAPIClient(),
		baseURL: "https://gitlab.com/api/v4",
	}
}

// NewGitLabWithBaseURL creates a GitLab adapter against a custom base URL,
// for tests with an httptest server.
func NewGitLabWithBaseURL(baseURL string) *GitLab {
	return &GitLab{
		api:     newAPIClient(),
		baseURL: baseURL,
	}
}

// Name returns the source tag.
func (g *GitLab) Name() string { return "gitlab" }

type gitlabUser struct {
	ID int64 `json:"id"`
}

type gitlabProject struct {
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	Description       string `json:"description"`
	WebURL            string `json:"web_url"`
	StarCount         int    `json:"star_count"`
	ForksCount        int    `json:"forks_count"`
	CreatedAt         string `json:"created_at"`
	LastActivityAt    string `json:"last_activity_at"`
	ForkedFromProject *struct {
		ID int64 `json:"id"`
	} `json:"forked_from_project"`
}

// Fetch resolves the user ID and lists projects ordered by last activity.
func (g *GitLab) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	headers := map[string]string{}
	if token := acct.Token(); token != "" {
		headers["PRIVATE-TOKEN"] = token
	}

	var users []gitlabUser
	lookupURL := fmt.Sprintf("%s/users?username=%s", g.baseURL, url.QueryEscape(acct.Username()))
	if err := g.api.getJSON(ctx, lookupURL, headers, &users); err != nil {
		return nil, fmt.Errorf("resolving gitlab user %s: %w", acct.Username(), err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("gitlab user %s: %w", acct.Username(), driven.ErrNotFound)
	}

	var repos []gitlabProject
	projectsURL := fmt.Sprintf("%s/users/%d/projects?per_page=100&order_by=last_activity_at", g.baseURL, users[0].ID)
	if err := g.api.getJSON(ctx, projectsURL, headers, &repos); err != nil {
		return nil, fmt.Errorf("listing gitlab projects for %s: %w", acct.Username(), err)
	}

	var projects []model.Project
	for _, repo := range repos {
		if repo.ForkedFromProject != nil {
			continue
		}
		projects = append(projects, model.Project{
			Name:        repo.Name,
			FullName:    repo.PathWithNamespace,
			Description: model.FirstSentence(repo.Description),
			URL:         repo.WebURL,
			Language:    nil, // Not included in the project listing payload.
			Stars:       repo.StarCount,
			Forks:       repo.ForksCount,
			CreatedAt:   repo.CreatedAt,
			UpdatedAt:   repo.LastActivityAt,
			Source:      "gitlab",
		})
	}

	return projects, nil
}
