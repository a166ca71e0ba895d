package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Provider = (*HuggingFace)(nil)

// HuggingFace lists models published by an author on the Hugging Face hub.
// A bearer token is required only for authenticated scopes; public listings
// work without one.
type HuggingFace struct {
	api     *apiClient
	baseURL string
}

// NewHuggingFace creates the Hugging Face adapter against huggingface.co.
func NewHuggingFace() *HuggingFace {
	return &HuggingFace{
		api:     newAPIClient(),
		baseURL: "https://huggingface.co/api",
	}
}

// NewHuggingFaceWithBaseURL creates an adapter against a custom base URL,
// for tests with an httptest server.
func NewHuggingFaceWithBaseURL(baseURL string) *HuggingFace {
	return &HuggingFace{
		api:     newAPIClient(),
		baseURL: baseURL,
	}
}

// Name returns the source tag.
func (h *HuggingFace) Name() string { return "huggingface" }

type huggingfaceModel struct {
	ModelID      string `json:"modelId"`
	PipelineTag  string `json:"pipeline_tag"`
	Downloads    int    `json:"downloads"`
	Likes        int    `json:"likes"`
	LastModified string `json:"lastModified"`
}

// Fetch lists all models authored by the account. The hub does not expose a
// creation timestamp on the listing, so CreatedAt stays empty.
func (h *HuggingFace) Fetch(ctx context.Context, acct model.Account) ([]model.Project, error) {
	headers := map[string]string{}
	if token := acct.Token(); token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	var models []huggingfaceModel
	listURL := fmt.Sprintf("%s/models?author=%s", h.baseURL, url.QueryEscape(acct.Username()))
	if err := h.api.getJSON(ctx, listURL, headers, &models); err != nil {
		return nil, fmt.Errorf("listing huggingface models for %s: %w", acct.Username(), err)
	}

	var projects []model.Project
	for _, m := range models {
		if m.ModelID == "" {
			continue
		}

		name := m.ModelID
		if idx := strings.LastIndex(m.ModelID, "/"); idx >= 0 {
			name = m.ModelID[idx+1:]
		}

		projects = append(projects, model.Project{
			Name:        name,
			FullName:    m.ModelID,
			Description: model.FirstSentence(m.PipelineTag),
			URL:         "https://huggingface.co/" + m.ModelID,
			Downloads:   m.Downloads,
			Likes:       m.Likes,
			UpdatedAt:   m.LastModified,
			Source:      "huggingface",
		})
	}

	return projects, nil
}
