package driven

import "github.com/devfoliohq/devfolio/internal/domain/model"

// PortfolioStore defines the driven port for portfolio persistence. Writes
// are whole-file overwrites of flat JSON documents.
type PortfolioStore interface {
	// Load reads the aggregated document. A missing file is not an error: it
	// yields an empty-but-well-formed document.
	Load() (model.Portfolio, error)

	// Save writes the canonical document, one per-source subset file per
	// distinct source tag, and one user-portal file per distinct username.
	// usernameBySource maps each source tag to the username configured for
	// that service at generation time.
	Save(doc model.Portfolio, usernameBySource map[string]string) error
}
