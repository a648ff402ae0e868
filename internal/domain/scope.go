package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Scope selects which sessions of a season are fetched in depth.
type Scope string

const (
	ScopeAll        Scope = "ALL"
	ScopeRace       Scope = "RACE"
	ScopeRaceSprint Scope = "RACE_SPRINT"
)

// ParseScope normalizes a configured scope value.
func ParseScope(raw string) (Scope, error) {
	switch Scope(strings.ToUpper(strings.TrimSpace(raw))) {
	case ScopeAll:
		return ScopeAll, nil
	case ScopeRace:
		return ScopeRace, nil
	case ScopeRaceSprint:
		return ScopeRaceSprint, nil
	default:
		return "", errors.Newf("unknown session scope %q (want ALL, RACE, or RACE_SPRINT)", raw)
	}
}

// FilterSessions returns the subset of a sessions Table matching the scope.
// Lookup is schema-tolerant: session_name and session_type are resolved
// case-insensitively and either may be absent.
//
// When no row matches, the input is returned unchanged rather than an empty
// Table, so an unexpected column convention cannot silently drop a season.
// Callers seeing suspiciously large results should assume the input came
// back unfiltered.
func FilterSessions(t Table, scope Scope) Table {
	if t.Empty() || scope == ScopeAll {
		return t
	}

	nameCol, hasName := t.Column("session_name")
	typeCol, hasType := t.Column("session_type")

	keep := make([]bool, t.Len())
	matched := false
	for i := range keep {
		name := ""
		if hasName {
			name = strings.ToLower(strings.TrimSpace(t.Value(i, nameCol)))
		}
		typ := ""
		if hasType {
			typ = strings.ToUpper(strings.TrimSpace(t.Value(i, typeCol)))
		}

		selected := (hasName && name == "race") || (hasType && typ == "R")
		if scope == ScopeRaceSprint {
			selected = selected ||
				(hasName && strings.Contains(name, "sprint")) ||
				(hasType && (typ == "S" || typ == "SPRINT"))
		}

		keep[i] = selected
		matched = matched || selected
	}

	if !matched {
		return t
	}
	return t.Select(keep)
}
