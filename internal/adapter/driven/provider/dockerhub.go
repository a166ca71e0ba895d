package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*DockerHub)(nil)

// DockerHub lists a user's image repositories, following the paginated
// listing's `next` cursor until exhausted.
type DockerHub struct {
	api     *apiClient
	baseURL string
}

// NewDockerHub creates the Docker Hub adapter against hub.docker.com.
func NewDockerHub() *DockerHub {
	return &DockerHub{
		api:     newAPIClient(),
		baseURL: "https://hub.docker.com/v2",
	}
}

// NewDockerHubWithBaseURL creates a Docker Hub adapter against a custom base
// URL, for tests with an httptest server.
func NewDockerHubWithBaseURL(baseURL string) *DockerHub {
	return &DockerHub{
		api:     newAPIClient(),
		baseURL: baseURL,
	}
}

// Name returns the source tag.
func (d *DockerHub) Name() string { return "dockerhub" }

type dockerhubPage struct {
	Next    string `json:"next"`
	Results []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		StarCount   int    `json:"star_count"`
		PullCount   int    `json:"pull_count"`
		LastUpdated string `json:"last_updated"`
	} `json:"results"`
}

// Fetch lists all repositories for the account. The listing only reports
// last_updated, which fills both timestamp fields.
func (d *DockerHub) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	username := acct.Username()
	next := fmt.Sprintf("%s/repositories/%s?page=1&page_size=100", d.baseURL, url.PathEscape(username))

	var projects []model.Project
	for next != "" {
		var page dockerhubPage
		if err := d.api.getJSON(ctx, next, nil, &page); err != nil {
			return nil, fmt.Errorf("listing dockerhub repositories for %s: %w", username, err)
		}

		for _, repo := range page.Results {
			projects = append(projects, model.Project{
				Name:        repo.Name,
				FullName:    username + "/" + repo.Name,
				Description: model.FirstSentence(repo.Description),
				URL:         fmt.Sprintf("https://hub.docker.com/r/%s/%s", username, repo.Name),
				Stars:       repo.StarCount,
				Pulls:       repo.PullCount,
				CreatedAt:   repo.LastUpdated,
				UpdatedAt:   repo.LastUpdated,
				Source:      "dockerhub",
			})
		}

		next = page.Next
	}

	return projects, nil
}
