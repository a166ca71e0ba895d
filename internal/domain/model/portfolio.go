package model

import "strings"

// Stats summarizes an aggregated portfolio: total record count and a
// per-source breakdown. TotalProjects always equals len(Portfolio.Projects)
// and the Sources counts always sum to TotalProjects.
type Stats struct {
	TotalProjects int            `json:"total_projects"`
	Sources       map[string]int `json:"sources"`
}

// Portfolio is the aggregated document rebuilt wholesale on each run and
// persisted by full overwrite of the backing file.
type Portfolio struct {
	LastUpdated string    `json:"last_updated"`
	Projects    []Project `json:"projects"`
	Stats       Stats     `json:"stats"`
}

// EmptyPortfolio returns a well-formed document with no projects, used when
// no backing file exists yet.
func EmptyPortfolio() Portfolio {
	return Portfolio{
		Projects: []Project{},
		Stats: Stats{
			Sources: map[string]int{},
		},
	}
}

// SourceStats carries the recomputed total for a per-source subset file.
type SourceStats struct {
	TotalProjects int `json:"total_projects"`
}

// SourcePortfolio is the per-source split of a Portfolio, written as a
// sibling file next to the main document.
type SourcePortfolio struct {
	Source      string      `json:"source"`
	LastUpdated string      `json:"last_updated"`
	Projects    []Project   `json:"projects"`
	Stats       SourceStats `json:"stats"`
}

// UserPortal groups a portfolio's projects under the username associated with
// each project's source. One file is written per distinct username.
type UserPortal struct {
	Username    string         `json:"username"`
	LastUpdated string         `json:"last_updated"`
	Sources     map[string]int `json:"sources"`
	Projects    []Project      `json:"projects"`
	Stats       Stats          `json:"stats"`
}

// SourceFileName derives the per-source file name from a source tag:
// lower-cased, spaces replaced with underscores.
func SourceFileName(source string) string {
	tag := strings.ReplaceAll(strings.ToLower(source), " ", "_")
	return "portfolio_" + tag + ".json"
}

// UserPortalFileName derives the per-user file name from a username:
// lower-cased, dots replaced with underscores.
func UserPortalFileName(username string) string {
	name := strings.ReplaceAll(strings.ToLower(username), ".", "_")
	return "user_" + name + "_portfolio.json"
}
