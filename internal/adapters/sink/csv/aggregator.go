package csv

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/openf1-tools/f1arc/internal/domain"
	"github.com/openf1-tools/f1arc/internal/ports"
)

const (
	targetFileMode = 0o644
	targetDirMode  = 0o755
)

// Target is one append-only CSV destination. Tables appended across a run
// accumulate into a single file with exactly one header row; whether the
// header is still owed is decided by the file's on-disk size, not by
// in-memory state, so a Target rebuilt mid-run stays correct.
type Target struct {
	path string
}

var _ ports.TableSink = (*Target)(nil)

// NewTarget binds a destination path. With overwrite set, a pre-existing
// file is deleted so the next append starts a fresh table. The parent
// directory is created either way.
func NewTarget(path string, overwrite bool) (*Target, error) {
	if err := os.MkdirAll(filepath.Dir(path), targetDirMode); err != nil {
		return nil, errors.Wrapf(err, "create output directory for %s", path)
	}

	if overwrite {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "remove existing output %s", path)
		}
	}

	return &Target{path: path}, nil
}

// Append writes a Table to the destination. Empty Tables are a no-op and
// never create the file. The header is written only when the file holds
// zero bytes; column consistency across appends is the caller's contract.
// Write failures surface as *domain.AggregationError.
func (t *Target) Append(table domain.Table) error {
	if table.Empty() {
		return nil
	}

	withHeader, err := t.headerOwed()
	if err != nil {
		return &domain.AggregationError{Path: t.path, Cause: err}
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, targetFileMode)
	if err != nil {
		return &domain.AggregationError{Path: t.path, Cause: errors.Wrap(err, "open output")}
	}

	if err := table.EncodeCSV(f, withHeader); err != nil {
		_ = f.Close()
		return &domain.AggregationError{Path: t.path, Cause: err}
	}

	if err := f.Close(); err != nil {
		return &domain.AggregationError{Path: t.path, Cause: errors.Wrap(err, "close output")}
	}
	return nil
}

func (t *Target) headerOwed() (bool, error) {
	info, err := os.Stat(t.path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "stat output")
	}
	return info.Size() == 0, nil
}

// Path returns the destination path.
func (t *Target) Path() string {
	return t.path
}

// Produced reports whether the destination exists with data.
func (t *Target) Produced() bool {
	info, err := os.Stat(t.path)
	return err == nil && info.Size() > 0
}
