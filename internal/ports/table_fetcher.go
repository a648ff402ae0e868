package ports

import (
	"context"

	"github.com/openf1-tools/f1arc/internal/domain"
)

// TableFetcher retrieves one tabular dataset from the upstream API.
// Implementations normalize "no data" responses to an empty Table and only
// fail once their retry budget is exhausted.
type TableFetcher interface {
	Fetch(ctx context.Context, endpoint string, params map[string]string) (domain.Table, error)
}
