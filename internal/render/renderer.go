// Package render produces the static HTML output tree from an aggregated
// portfolio document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/natefinch/atomic"
	"github.com/yuin/goldmark"

	"github.com/devfoliohq/devfolio/internal/config"
	"github.com/devfoliohq/devfolio/internal/domain/model"
)

//go:embed templates
var templatesFS embed.FS

// Renderer turns a portfolio document into index.html plus a static asset
// tree in the output directory. Project descriptions are treated as markdown,
// rendered with goldmark and sanitized with bluemonday before inlining.
type Renderer struct {
	outDir   string
	template string
	theme    config.ThemeConfig
	md       goldmark.Markdown
	policy   *bluemonday.Policy
}

// New creates a Renderer writing into outDir using the named template.
func New(outDir, templateName string, theme config.ThemeConfig) *Renderer {
	return &Renderer{
		outDir:   outDir,
		template: templateName,
		theme:    theme,
		md:       goldmark.New(),
		policy:   bluemonday.UGCPolicy(),
	}
}

// page is the template context for index.html.
type page struct {
	Title       string
	GeneratedAt string
	Theme       themeView
	Stats       model.Stats
	Projects    []projectView
}

// themeView exposes the configured theme tokens as CSS values so the
// template can substitute them inside the inline stylesheet.
type themeView struct {
	PrimaryColor    template.CSS
	SecondaryColor  template.CSS
	BackgroundColor template.CSS
	TextColor       template.CSS
	FontFamily      template.CSS
}

func toThemeView(t config.ThemeConfig) themeView {
	return themeView{
		PrimaryColor:    template.CSS(t.PrimaryColor),
		SecondaryColor:  template.CSS(t.SecondaryColor),
		BackgroundColor: template.CSS(t.BackgroundColor),
		TextColor:       template.CSS(t.TextColor),
		FontFamily:      template.CSS(t.FontFamily),
	}
}

// projectView pairs a record with its sanitized description HTML.
type projectView struct {
	model.Project
	DescriptionHTML template.HTML
	LanguageLabel   string
}

// Render writes index.html and the template's static assets into the output
// directory, creating it as needed.
func (r *Renderer) Render(doc model.Portfolio) error {
	tmplPath := fmt.Sprintf("templates/%s/index.html.tmpl", r.template)
	tmpl, err := template.ParseFS(templatesFS, tmplPath)
	if err != nil {
		return fmt.Errorf("loading template %q: %w", r.template, err)
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", r.outDir, err)
	}

	ctx := page{
		Title:       "My Development Portfolio",
		GeneratedAt: doc.LastUpdated,
		Theme:       toThemeView(r.theme),
		Stats:       doc.Stats,
		Projects:    make([]projectView, 0, len(doc.Projects)),
	}
	for _, p := range doc.Projects {
		ctx.Projects = append(ctx.Projects, projectView{
			Project:         p,
			DescriptionHTML: r.descriptionHTML(p.Description),
			LanguageLabel:   languageLabel(p.Language),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return fmt.Errorf("rendering index.html: %w", err)
	}

	indexPath := filepath.Join(r.outDir, "index.html")
	if err := atomic.WriteFile(indexPath, &buf); err != nil {
		return fmt.Errorf("writing index.html: %w", err)
	}

	return r.copyStatic()
}

// descriptionHTML renders a markdown description and sanitizes the result.
// Unrenderable input falls back to the escaped plain text.
func (r *Renderer) descriptionHTML(description string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(description), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(description))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// copyStatic copies the template's static assets (CSS) into outDir/static.
func (r *Renderer) copyStatic() error {
	staticRoot := fmt.Sprintf("templates/%s/static", r.template)

	return fs.WalkDir(templatesFS, staticRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A template without static assets is fine.
			if path == staticRoot {
				return fs.SkipAll
			}
			return err
		}

		rel := strings.TrimPrefix(path, staticRoot)
		dst := filepath.Join(r.outDir, "static", rel)

		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}

		data, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading embedded asset %s: %w", path, err)
		}
		if err := atomic.WriteFile(dst, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("writing asset %s: %w", dst, err)
		}
		return nil
	})
}

func languageLabel(language *string) string {
	if language == nil || *language == "" {
		return "N/A"
	}
	return *language
}
