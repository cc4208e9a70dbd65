// Package catalog holds the set of secret names shared by all players, and maps
// each name to the puzzle that a response for it is bound to.
package catalog

import (
	"fmt"
	"sort"

	"github.com/go-errors/errors"
)

var (
	ErrUnknownSecret  = errors.New("unknown secret")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Catalog is an immutable set of distinct secret names, kept in lexicographic order.
// The order in which names were supplied is irrelevant: the sorted order
// determines which puzzle belongs to which name.
type Catalog struct {
	names []string
}

// New creates a catalog of the given names, which must be distinct and non-empty.
func New(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, errors.WrapPrefix(ErrInvalidCatalog, "no names", 0)
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	for i, name := range sorted {
		if name == "" {
			return nil, errors.WrapPrefix(ErrInvalidCatalog, "empty name", 0)
		}
		if i > 0 && sorted[i-1] == name {
			return nil, errors.WrapPrefix(ErrInvalidCatalog, fmt.Sprintf("duplicate name %q", name), 0)
		}
	}
	return &Catalog{names: sorted}, nil
}

// Names returns the names in canonical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func (c *Catalog) Contains(secret string) bool {
	_, err := c.Position(secret)
	return err == nil
}

// Position returns the index of secret in the canonical order.
func (c *Catalog) Position(secret string) (int, error) {
	if c == nil {
		return 0, errors.WrapPrefix(ErrInvalidCatalog, "missing catalog", 0)
	}
	i := sort.SearchStrings(c.names, secret)
	if i == len(c.names) || c.names[i] != secret {
		return 0, ErrUnknownSecret
	}
	return i, nil
}

// IndexOf returns the index of the puzzle bound to secret, in a challenge of puzzleCount puzzles.
// When the catalog is larger than the challenge, several secrets share a puzzle.
func (c *Catalog) IndexOf(secret string, puzzleCount int) (int, error) {
	if puzzleCount < 1 {
		return 0, errors.WrapPrefix(ErrInvalidCatalog, "no puzzles to index", 0)
	}
	i, err := c.Position(secret)
	if err != nil {
		return 0, err
	}
	return i % puzzleCount, nil
}
