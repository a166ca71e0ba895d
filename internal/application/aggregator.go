// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/devfoliohq/devfolio/internal/domain/model"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Aggregator runs one full pass over all registered providers and produces a
// fresh portfolio document. Providers are invoked strictly sequentially in
// registration order; a failing provider contributes zero records and never
// aborts the run.
type Aggregator struct {
	providers []driven.Provider
	accounts  driven.AccountStore
	now       func() time.Time
}

// NewAggregator creates an Aggregator over the given providers and account
// store.
func NewAggregator(providers []driven.Provider, accounts driven.AccountStore) *Aggregator {
	return &Aggregator{
		providers: providers,
		accounts:  accounts,
		now:       time.Now,
	}
}

// Run fetches every provider, concatenates the normalized records, computes
// stats, sorts by recency, and stamps the document with the current UTC time.
func (a *Aggregator) Run(ctx context.Context) model.Portfolio {
	start := a.now()

	doc := model.EmptyPortfolio()

	for _, p := range a.providers {
		if ctx.Err() != nil {
			break
		}

		fields := a.accounts.Get(p.Name())
		acct := model.Account{Service: p.Name(), Fields: fields}
		if acct.Username() == "" {
			slog.Info("no username configured, skipping source", "source", p.Name())
			continue
		}

		projects, err := p.Fetch(ctx, acct)
		if err != nil {
			logFetchError(p.Name(), err)
			continue
		}

		if len(projects) > 0 {
			doc.Projects = append(doc.Projects, projects...)
			doc.Stats.Sources[p.Name()] = len(projects)
		}
		slog.Info("source fetched", "source", p.Name(), "projects", len(projects))
	}

	doc.Stats.TotalProjects = len(doc.Projects)
	sortByRecency(doc.Projects)
	doc.LastUpdated = a.now().UTC().Format(time.RFC3339)

	slog.Info("aggregation complete",
		"projects", doc.Stats.TotalProjects,
		"sources", len(doc.Stats.Sources),
		"duration", a.now().Sub(start).Round(time.Millisecond),
	)

	return doc
}

// logFetchError emits one diagnostic line per failed source, distinguishing
// the not-found and authorization cases from generic failures.
func logFetchError(source string, err error) {
	switch {
	case errors.Is(err, driven.ErrNotFound):
		slog.Info("no data for source", "source", source)
	case errors.Is(err, driven.ErrForbidden):
		slog.Warn("authorization failed, check the configured token", "source", source, "error", err)
	default:
		slog.Error("source fetch failed", "source", source, "error", err)
	}
}

// sortByRecency orders projects newest-first by their effective timestamp
// (updated_at, falling back to created_at). Timestamps are parsed to instants
// rather than compared as raw strings, since providers emit mixed ISO-8601
// variants. The sort is stable so each provider's internal ordering survives
// among equal timestamps.
func sortByRecency(projects []model.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		ti, iOK := parseWhen(projects[i].EffectiveTimestamp())
		tj, jOK := parseWhen(projects[j].EffectiveTimestamp())
		if iOK != jOK {
			return iOK // Unparsable timestamps sink to the end.
		}
		return ti.After(tj)
	})
}

// whenFormats is the ladder of timestamp shapes seen across providers.
var whenFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseWhen(raw string) (time.Time, bool) {
	for _, layout := range whenFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
