package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoSeasons is returned when discovery finds no season with any
// session data; nothing downstream can proceed without one.
var ErrNoSeasons = errors.New("no seasons with session data detected")

// FetchError reports a fetch whose retry budget is exhausted. It carries
// the endpoint and query parameters so a failing unit of work can be
// reproduced by hand.
type FetchError struct {
	Endpoint string
	Params   map[string]string
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Endpoint, formatParams(e.Params), e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// AggregationError reports a destination write failure. Unlike fetch
// failures it is never downgraded: continuing a run past a failed write
// would silently lose data.
type AggregationError struct {
	Path  string
	Cause error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate to %s: %v", e.Path, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "no params"
	}
	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
