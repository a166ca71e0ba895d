package driven

import (
	"context"
	"errors"

	"github.com/devfoliohq/devfolio/internal/domain/model"
)

// ErrNotFound indicates the provider has no data for the account (HTTP 404).
// Callers treat it as "no projects", not a failure.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates an authorization failure (HTTP 403), usually a bad
// or missing token. Callers surface a credential diagnostic and continue.
var ErrForbidden = errors.New("access forbidden: check your API token")

// Provider is the driven port implemented once per external platform. Fetch
// lists the account's public projects normalized to the common record shape.
// Implementations return an error rather than panicking; the aggregator is
// the catch point and treats any error as zero records for that source.
type Provider interface {
	// Name returns the lower-case source tag stamped on every record.
	Name() string

	// Fetch retrieves and normalizes all projects for the given account.
	Fetch(ctx context.Context, acct model.Account) ([]model.Project, error)
}
