// Package git provides high-level Git operations through a clean facade.
// This file contains the stock ChangeFilter predicates for Diff.
package git

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// eitherName applies pred to the old and new names of a change. Adds have an
// empty From name and deletes an empty To name; the empty side is skipped so
// predicates only ever see real paths.
func eitherName(change *object.Change, pred func(string) bool) bool {
	if change.From.Name != "" && pred(change.From.Name) {
		return true
	}
	return change.To.Name != "" && pred(change.To.Name)
}

// PathFilter includes changes whose path matches a shell glob pattern
// (* and ? wildcards). Renames pass when either side matches.
func PathFilter(pattern string) ChangeFilter {
	return func(change *object.Change) bool {
		return eitherName(change, func(name string) bool {
			matched, _ := filepath.Match(pattern, name)
			return matched
		})
	}
}

// PathPrefixFilter includes changes under the given path prefix, which is the
// usual way to scope a diff to one directory.
func PathPrefixFilter(prefix string) ChangeFilter {
	return func(change *object.Change) bool {
		return eitherName(change, func(name string) bool {
			return strings.HasPrefix(name, prefix)
		})
	}
}

// ExtensionFilter includes changes to files carrying one of the given
// extensions. Extensions are matched case-insensitively and should include
// the dot (".go", ".md").
func ExtensionFilter(extensions ...string) ChangeFilter {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	return func(change *object.Change) bool {
		return eitherName(change, func(name string) bool {
			return extSet[strings.ToLower(filepath.Ext(name))]
		})
	}
}

// NonBinaryFilter excludes changes touching files that look binary by
// extension, the same heuristic Diff uses when marking PatchText.IsBinary.
func NonBinaryFilter() ChangeFilter {
	return func(change *object.Change) bool {
		return !eitherName(change, isBinaryPath)
	}
}

// AddedFilter includes only newly added files.
func AddedFilter() ChangeFilter {
	return func(change *object.Change) bool {
		return change.From.Name == "" && change.To.Name != ""
	}
}

// DeletedFilter includes only deleted files.
func DeletedFilter() ChangeFilter {
	return func(change *object.Change) bool {
		return change.From.Name != "" && change.To.Name == ""
	}
}

// ModifiedFilter includes only files changed in place, excluding adds,
// deletes, and renames.
func ModifiedFilter() ChangeFilter {
	return func(change *object.Change) bool {
		return change.From.Name != "" && change.From.Name == change.To.Name
	}
}

// RenamedFilter includes only files whose path changed between the two sides.
func RenamedFilter() ChangeFilter {
	return func(change *object.Change) bool {
		return change.From.Name != "" && change.To.Name != "" &&
			change.From.Name != change.To.Name
	}
}

// AndFilter passes a change only when every given filter passes it.
// Nil filters are skipped.
func AndFilter(filters ...ChangeFilter) ChangeFilter {
	return func(change *object.Change) bool {
		for _, filter := range filters {
			if filter != nil && !filter(change) {
				return false
			}
		}
		return true
	}
}

// OrFilter passes a change when at least one given filter passes it.
// Nil filters are skipped.
func OrFilter(filters ...ChangeFilter) ChangeFilter {
	return func(change *object.Change) bool {
		for _, filter := range filters {
			if filter != nil && filter(change) {
				return true
			}
		}
		return false
	}
}

// NotFilter inverts another filter. A nil filter inverts to pass-everything.
func NotFilter(filter ChangeFilter) ChangeFilter {
	return func(change *object.Change) bool {
		return filter == nil || !filter(change)
	}
}
