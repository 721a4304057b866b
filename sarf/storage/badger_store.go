package storage

import (
	"bytes"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sugawarayuuta/sonnet"

	"github.com/sarfdb/sarf"
)

// Key prefixes. Roots and patterns share one keyspace; the prefix keeps
// the two ranges disjoint and scannable.
var (
	rootPrefix    = []byte("r/")
	patternPrefix = []byte("p/")
)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logging is noise here

	// The vocabulary is small; keep badger's footprint modest.
	opts.MemTableSize = 8 << 20
	opts.ValueThreshold = 1 << 10 // keep small values in the LSM tree

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func rootKey(root sarf.Root) []byte {
	return append(append([]byte{}, rootPrefix...), root.String()...)
}

func patternKey(p sarf.Pattern) []byte {
	return append(append([]byte{}, patternPrefix...), string(p)...)
}

// SaveRoot writes the root and its word ledger, overwriting any
// previous value.
func (s *BadgerStore) SaveRoot(root sarf.Root, words map[string]sarf.WordInfo) error {
	if words == nil {
		words = map[string]sarf.WordInfo{}
	}
	value, err := sonnet.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode word ledger: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rootKey(root), value)
	})
}

// DeleteRoot removes a persisted root. Deleting an absent root is not
// an error.
func (s *BadgerStore) DeleteRoot(root sarf.Root) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(rootKey(root))
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}

// SavePattern writes a template key. The template text is the whole
// record; the value is empty.
func (s *BadgerStore) SavePattern(p sarf.Pattern) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(patternKey(p), nil)
	})
}

// DeletePattern removes a persisted template.
func (s *BadgerStore) DeletePattern(p sarf.Pattern) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(patternKey(p))
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}

// Load scans both key ranges and returns the full persisted state.
func (s *BadgerStore) Load() (*Snapshot, error) {
	snap := &Snapshot{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			switch {
			case bytes.HasPrefix(key, rootPrefix):
				rec := RootRecord{Root: string(key[len(rootPrefix):])}
				err := item.Value(func(val []byte) error {
					if len(val) == 0 {
						rec.Words = map[string]sarf.WordInfo{}
						return nil
					}
					return sonnet.Unmarshal(val, &rec.Words)
				})
				if err != nil {
					return fmt.Errorf("failed to decode root %q: %w", rec.Root, err)
				}
				snap.Roots = append(snap.Roots, rec)
			case bytes.HasPrefix(key, patternPrefix):
				snap.Patterns = append(snap.Patterns, sarf.Pattern(key[len(patternPrefix):]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
