package ports

import "github.com/openf1-tools/f1arc/internal/domain"

// TableSink accumulates Tables appended over a run into one destination.
// Appending an empty Table is a no-op and must not create the destination.
type TableSink interface {
	Append(table domain.Table) error
	Path() string
	Produced() bool
}
