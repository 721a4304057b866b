// Package storage persists index contents across restarts. The core
// indices never touch it; the lexicon writes through after each
// mutation and replays the store into fresh indices at startup.
package storage

import (
	"github.com/sarfdb/sarf"
)

// RootRecord is a persisted root with its derived-word ledger.
type RootRecord struct {
	Root  string                   `json:"root"`
	Words map[string]sarf.WordInfo `json:"derived_words"`
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Roots    []RootRecord
	Patterns []sarf.Pattern
}

// Store is the persistence contract. Implementations must tolerate
// repeated saves of the same key (write-through semantics) and deletes
// of absent keys.
type Store interface {
	SaveRoot(root sarf.Root, words map[string]sarf.WordInfo) error
	DeleteRoot(root sarf.Root) error

	SavePattern(p sarf.Pattern) error
	DeletePattern(p sarf.Pattern) error

	// Load reads the entire persisted state.
	Load() (*Snapshot, error)

	Close() error
}
