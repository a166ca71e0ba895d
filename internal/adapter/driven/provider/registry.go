package provider

import (
	"github.com/devfoliohq/devfolio/internal/config"
	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Registry returns all provider adapters in the fixed aggregation order.
// The order is deterministic so repeated runs against identical upstream
// data produce identical documents.
func Registry(cfg *config.Config) []driven.Provider {
	return []driven.Provider{
		NewGitHub(cfg.IncludePrivate),
		NewGitLab(),
		NewNPM(),
		NewPyPI(),
		NewDockerHub(),
		NewHuggingFace(),
		NewPackagist(),
	}
}
