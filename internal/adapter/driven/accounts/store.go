// Package accounts implements the AccountStore port over a TOML backing file
// layered with environment-sourced credentials.
package accounts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*Store)(nil)

// Store resolves per-service credentials from a TOML file overlaid with
// environment values. Environment wins field-by-field when both layers supply
// a value. A Store constructed with an empty path is read-only.
type Store struct {
	path string
	env  map[string]map[string]string
	file map[string]map[string]string
}

// New creates a Store backed by the TOML document at path. The env layer is
// passed in explicitly (built from Config) rather than read from the process
// environment. A missing file is not an error; the file layer starts empty
// and is created on the first Update.
func New(path string, env map[string]map[string]string) (*Store, error) {
	s := &Store{
		path: path,
		env:  lowerKeys(env),
		file: map[string]map[string]string{},
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts file %s: %w", path, err)
	}

	var doc map[string]map[string]string
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing accounts file %s: %w", path, err)
	}
	s.file = lowerKeys(doc)

	return s, nil
}

// Resolve returns the merged service -> field -> value mapping. For each
// field the environment value wins when both layers supply it; services with
// no non-empty field are excluded entirely.
func (s *Store) Resolve() map[string]map[string]string {
	merged := map[string]map[string]string{}

	for service, fields := range s.file {
		for field, value := range fields {
			if value == "" {
				continue
			}
			setField(merged, service, field, value)
		}
	}
	for service, fields := range s.env {
		for field, value := range fields {
			if value == "" {
				continue
			}
			setField(merged, service, field, value)
		}
	}

	return merged
}

// Get returns the resolved fields for one service, case-insensitive on the
// service name. An absent service yields an empty map, never an error.
func (s *Store) Get(service string) map[string]string {
	fields, ok := s.Resolve()[strings.ToLower(service)]
	if !ok {
		return map[string]string{}
	}
	return fields
}

// Update merges fields into the service's file-layer entry and rewrites the
// whole backing document atomically. Memory and file change together or not
// at all. Parent directories are created on first write.
func (s *Store) Update(service string, fields map[string]string) error {
	service = strings.ToLower(strings.TrimSpace(service))
	if service == "" {
		return errors.New("service name must be a non-empty string")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}
	if s.path == "" {
		return driven.ErrReadOnly
	}

	hasValue := false
	for _, v := range fields {
		if v != "" {
			hasValue = true
			break
		}
	}
	if !hasValue {
		return fmt.Errorf("update for %q has no non-empty field value", service)
	}

	// Merge into a copy so a failed write leaves the in-memory map untouched.
	next := map[string]map[string]string{}
	for svc, f := range s.file {
		next[svc] = map[string]string{}
		for k, v := range f {
			next[svc][k] = v
		}
	}
	if next[service] == nil {
		next[service] = map[string]string{}
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		next[service][strings.ToLower(field)] = value
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.file = next

	return nil
}

// persist serializes the whole document and replaces the backing file
// atomically.
func (s *Store) persist(doc map[string]map[string]string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating accounts directory %s: %w", dir, err)
		}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding accounts file: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing accounts file %s: %w", s.path, err)
	}

	return nil
}

func setField(dst map[string]map[string]string, service, field, value string) {
	if dst[service] == nil {
		dst[service] = map[string]string{}
	}
	dst[service][strings.ToLower(field)] = value
}

func lowerKeys(src map[string]map[string]string) map[string]map[string]string {
	dst := make(map[string]map[string]string, len(src))
	for service, fields := range src {
		svc := strings.ToLower(service)
		if dst[svc] == nil {
			dst[svc] = map[string]string{}
		}
		for field, value := range fields {
			dst[svc][strings.ToLower(field)] = value
		}
	}
	return dst
}
