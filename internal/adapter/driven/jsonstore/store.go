// Package jsonstore implements the PortfolioStore port over flat JSON
// documents in an output directory.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PortfolioStore = (*Store)(nil)

const (
	portfolioFile  = "portfolio.json"
	userPortalsDir = "user_portals"
)

// Store persists the aggregated portfolio as portfolio.json plus per-source
// and per-user sibling files. All writes are atomic whole-file replacements.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the canonical document. A missing file yields an empty
// well-formed document; an unreadable or corrupt existing file is an error.
func (s *Store) Load() (model.Portfolio, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, portfolioFile))
	if errors.Is(err, os.ErrNotExist) {
		return model.EmptyPortfolio(), nil
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("reading portfolio document: %w", err)
	}

	var doc model.Portfolio
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Portfolio{}, fmt.Errorf("parsing portfolio document: %w", err)
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}
	if doc.Stats.Sources == nil {
		doc.Stats.Sources = map[string]int{}
	}

	return doc, nil
}

// Save writes the canonical document, one per-source subset file per distinct
// source tag, and one user-portal file per distinct username.
func (s *Store) Save(doc model.Portfolio, usernameBySource map[string]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	if err := s.writeJSON(filepath.Join(s.dir, portfolioFile), doc); err != nil {
		return err
	}

	if err := s.writeSourceFiles(doc); err != nil {
		return err
	}

	return s.writeUserPortals(doc, usernameBySource)
}

// writeSourceFiles splits the document by source tag and writes one subset
// file per source with its stats recomputed.
func (s *Store) writeSourceFiles(doc model.Portfolio) error {
	bySource := map[string][]model.Project{}
	for _, p := range doc.Projects {
		if p.Source == "" {
			continue
		}
		bySource[p.Source] = append(bySource[p.Source], p)
	}

	for source, projects := range bySource {
		subset := model.SourcePortfolio{
			Source:      source,
			LastUpdated: doc.LastUpdated,
			Projects:    projects,
			Stats:       model.SourceStats{TotalProjects: len(projects)},
		}
		path := filepath.Join(s.dir, model.SourceFileName(source))
		if err := s.writeJSON(path, subset); err != nil {
			return err
		}
	}

	return nil
}

// writeUserPortals groups projects under the username configured for each
// project's source and writes one file per distinct username.
func (s *Store) writeUserPortals(doc model.Portfolio, usernameBySource map[string]string) error {
	portals := map[string]*model.UserPortal{}

	for _, p := range doc.Projects {
		username := usernameBySource[p.Source]
		if username == "" {
			continue
		}

		portal, ok := portals[username]
		if !ok {
			portal = &model.UserPortal{
				Username:    username,
				LastUpdated: doc.LastUpdated,
				Sources:     map[string]int{},
				Projects:    []model.Project{},
			}
			portals[username] = portal
		}

		portal.Sources[p.Source]++
		portal.Projects = append(portal.Projects, p)
	}

	if len(portals) == 0 {
		return nil
	}

	dir := filepath.Join(s.dir, userPortalsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating user portals directory: %w", err)
	}

	for username, portal := range portals {
		portal.Stats = model.Stats{
			TotalProjects: len(portal.Projects),
			Sources:       portal.Sources,
		}
		path := filepath.Join(dir, model.UserPortalFileName(username))
		if err := s.writeJSON(path, portal); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
