package model

import "strings"

// DescriptionFallback is used when a provider returns no description at all.
const DescriptionFallback = "No description available"

// Project is the normalized record produced by every provider adapter.
// Timestamps are kept as the provider-native ISO-8601 strings and are never
// reformatted; Source is always present and is the sole grouping key for
// per-source output files.
type Project struct {
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Language    *string `json:"language"`
	Stars       int     `json:"stars"`

	// Provider-specific popularity and metadata extensions. Additive;
	// downstream consumers must not require them.
	Forks         int      `json:"forks,omitempty"`
	Downloads     int      `json:"downloads,omitempty"`
	Pulls         int      `json:"pulls,omitempty"`
	Likes         int      `json:"likes,omitempty"`
	Favers        int      `json:"favers,omitempty"`
	Version       string   `json:"version,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	License       []string `json:"license,omitempty"`
	RepositoryURL string   `json:"repository_url,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at"`
	Source    string `json:"source"`
}

// EffectiveTimestamp returns the string used for recency ordering: UpdatedAt,
// or CreatedAt when UpdatedAt is empty.
func (p Project) EffectiveTimestamp() string {
	if p.UpdatedAt != "" {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// FirstSentence trims a description down to its first sentence. Empty input
// yields the shared fallback placeholder.
func FirstSentence(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return DescriptionFallback
	}

	for _, sep := range []string{". ", ".\n", "! ", "? "} {
		if idx := strings.Index(description, sep); idx >= 0 {
			return description[:idx+1]
		}
	}

	return description
}

// Lang wraps a provider language string into the nullable form used on
// Project. Empty input maps to nil, which serializes as JSON null.
func Lang(language string) *string {
	if language == "" {
		return nil
	}
	return &language
}
