package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfoliohq/devfolio/internal/config"
	"github.com/devfoliohq/devfolio/internal/domain/model"
)

func testTheme() config.ThemeConfig {
	return config.ThemeConfig{
		PrimaryColor:    "#2563eb",
		SecondaryColor:  "#7c3aed",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		FontFamily:      "Inter, sans-serif",
	}
}

func renderedIndex(t *testing.T, doc model.Portfolio) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, New(dir, "default", testTheme()).Render(doc))

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	return string(data)
}

func TestRender_WritesIndexAndAssets(t *testing.T) {
	dir := t.TempDir()
	doc := model.Portfolio{
		LastUpdated: "2024-06-15T12:00:00Z",
		Projects: []model.Project{
			{
				Name:        "devfolio",
				FullName:    "octocat/devfolio",
				Description: "Portfolio aggregator.",
				URL:         "https://github.com/octocat/devfolio",
				Language:    model.Lang("Go"),
				Stars:       12,
				UpdatedAt:   "2024-06-01T00:00:00Z",
				Source:      "github",
			},
		},
		Stats: model.Stats{TotalProjects: 1, Sources: map[string]int{"github": 1}},
	}

	require.NoError(t, New(dir, "default", testTheme()).Render(doc))

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "octocat/devfolio")
	assert.Contains(t, string(html), "2024-06-15T12:00:00Z")

	_, err = os.Stat(filepath.Join(dir, "static", "style.css"))
	assert.NoError(t, err)
}

func TestRender_ThemeValuesSurviveIntoCSS(t *testing.T) {
	html := renderedIndex(t, model.EmptyPortfolio())

	assert.Contains(t, html, "#2563eb")
	// A comma-separated font stack must not be mangled by CSS escaping.
	assert.Contains(t, html, "Inter, sans-serif")
}

func TestRender_MarkdownDescription(t *testing.T) {
	doc := model.EmptyPortfolio()
	doc.Projects = append(doc.Projects, model.Project{
		Name:        "md",
		FullName:    "dev/md",
		Description: "Uses **bold** text.",
		UpdatedAt:   "2024-01-01T00:00:00Z",
		Source:      "github",
	})
	doc.Stats.TotalProjects = 1

	html := renderedIndex(t, doc)

	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRender_SanitizesScriptTags(t *testing.T) {
	doc := model.EmptyPortfolio()
	doc.Projects = append(doc.Projects, model.Project{
		Name:        "evil",
		FullName:    "dev/evil",
		Description: `An innocent library <script>alert("x")</script> indeed.`,
		UpdatedAt:   "2024-01-01T00:00:00Z",
		Source:      "npm",
	})
	doc.Stats.TotalProjects = 1

	html := renderedIndex(t, doc)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "An innocent library")
}

func TestRender_MissingLanguageLabel(t *testing.T) {
	doc := model.EmptyPortfolio()
	doc.Projects = append(doc.Projects, model.Project{
		Name:      "nolang",
		FullName:  "dev/nolang",
		UpdatedAt: "2024-01-01T00:00:00Z",
		Source:    "dockerhub",
	})
	doc.Stats.TotalProjects = 1

	html := renderedIndex(t, doc)

	assert.Contains(t, html, "N/A")
}

func TestRender_UnknownTemplate(t *testing.T) {
	err := New(t.TempDir(), "missing", testTheme()).Render(model.EmptyPortfolio())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading template")
}

func TestLanguageLabel(t *testing.T) {
	assert.Equal(t, "Go", languageLabel(model.Lang("Go")))
	assert.Equal(t, "N/A", languageLabel(nil))
	empty := ""
	assert.Equal(t, "N/A", languageLabel(&empty))
}
