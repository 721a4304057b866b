package index

import (
	"github.com/sarfdb/sarf"
)

// Hash parameters. The bucket count is a fixed prime and the table is
// never resized; chains absorb growth.
const (
	DefaultTableSize = 101
	hashBase         = 31
	hashModulus      = 1_000_000_007
)

// patternEntry is a link in a bucket chain. Chains keep insertion order
// so the displayed structure is deterministic.
type patternEntry struct {
	template sarf.Pattern
	hash     uint64 // full rolling hash, precomputed at insertion
	next     *patternEntry
}

// PatternTable is a hash table over pattern templates with chained
// collision resolution. The template text is its own key.
type PatternTable struct {
	buckets    []*patternEntry
	size       int
	count      int
	collisions int // insertions that landed in a non-empty bucket
}

// NewPatternTable returns an empty table with the default bucket count.
func NewPatternTable() *PatternTable {
	return NewPatternTableSize(DefaultTableSize)
}

// NewPatternTableSize returns an empty table with size buckets.
func NewPatternTableSize(size int) *PatternTable {
	if size <= 0 {
		size = DefaultTableSize
	}
	return &PatternTable{
		buckets: make([]*patternEntry, size),
		size:    size,
	}
}

// Hash computes the polynomial rolling hash of p:
//
//	h = (h*31 + codepoint) mod 1e9+7
//
// over the codepoints left to right. It is deterministic and
// position-sensitive: transposed templates hash differently.
func Hash(p sarf.Pattern) uint64 {
	var h uint64
	for _, c := range string(p) {
		h = (h*hashBase + uint64(c)) % hashModulus
	}
	return h
}

// BucketIndex returns the bucket p maps to in this table.
func (ht *PatternTable) BucketIndex(p sarf.Pattern) int {
	return int(Hash(p) % uint64(ht.size))
}

// Put inserts p. It reports false if an identical template is already
// stored; re-insertion is a no-op, never an update. New entries append
// at the tail of the chain so chain order is insertion order.
func (ht *PatternTable) Put(p sarf.Pattern) bool {
	idx := ht.BucketIndex(p)

	var tail *patternEntry
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if e.template == p {
			return false
		}
		tail = e
	}

	entry := &patternEntry{template: p, hash: Hash(p)}
	if tail == nil {
		ht.buckets[idx] = entry
	} else {
		tail.next = entry
		ht.collisions++
	}
	ht.count++
	return true
}

// Contains reports whether p is stored. Equality is exact template
// comparison; a hash collision alone is not a match.
func (ht *PatternTable) Contains(p sarf.Pattern) bool {
	for e := ht.buckets[ht.BucketIndex(p)]; e != nil; e = e.next {
		if e.template == p {
			return true
		}
	}
	return false
}

// Delete removes p, reporting false if absent.
func (ht *PatternTable) Delete(p sarf.Pattern) bool {
	idx := ht.BucketIndex(p)

	var prev *patternEntry
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if e.template == p {
			if prev == nil {
				ht.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			ht.count--
			return true
		}
		prev = e
	}
	return false
}

// Rename replaces the template old with new, i.e. deletes the old key
// and inserts the new one. The template text is the key itself, so
// there is no in-place update.
func (ht *PatternTable) Rename(old, new sarf.Pattern) error {
	if !ht.Contains(old) {
		return sarf.ErrNotFound
	}
	if old == new {
		return nil
	}
	if ht.Contains(new) {
		return sarf.ErrDuplicate
	}
	ht.Delete(old)
	ht.Put(new)
	return nil
}

// All returns every stored template. Enumeration order is bucket-index
// order, then chain (insertion) order within each bucket — not sorted.
// Validation tie-breaking depends on this order being stable.
func (ht *PatternTable) All() []sarf.Pattern {
	out := make([]sarf.Pattern, 0, ht.count)
	for _, b := range ht.buckets {
		for e := b; e != nil; e = e.next {
			out = append(out, e.template)
		}
	}
	return out
}

// Len returns the number of stored templates.
func (ht *PatternTable) Len() int { return ht.count }

// TableStats are read-only diagnostics of the table shape.
type TableStats struct {
	Size            int     `json:"size"`
	Count           int     `json:"count"`
	LoadFactor      float64 `json:"load_factor"`
	NonEmptyBuckets int     `json:"non_empty_buckets"`
	// Collisions counts insertions into a bucket that already held at
	// least one entry. It is monotonic: deletions and renames do not
	// decrement it.
	Collisions int `json:"collisions"`
}

// Stats returns the current table diagnostics.
func (ht *PatternTable) Stats() TableStats {
	nonEmpty := 0
	for _, b := range ht.buckets {
		if b != nil {
			nonEmpty++
		}
	}
	lf := 0.0
	if ht.size > 0 {
		lf = float64(ht.count) / float64(ht.size)
	}
	return TableStats{
		Size:            ht.size,
		Count:           ht.count,
		LoadFactor:      lf,
		NonEmptyBuckets: nonEmpty,
		Collisions:      ht.collisions,
	}
}

// BucketEntry is one chain link in a bucket snapshot.
type BucketEntry struct {
	Template sarf.Pattern `json:"template"`
	Hash     uint64       `json:"hash_value"`
}

// BucketInfo is a snapshot of one bucket's chain.
type BucketInfo struct {
	Index   int           `json:"index"`
	Entries []BucketEntry `json:"chain"`
}

// Buckets returns a snapshot of every bucket chain, including empty
// buckets, for visualization.
func (ht *PatternTable) Buckets() []BucketInfo {
	out := make([]BucketInfo, ht.size)
	for i, b := range ht.buckets {
		info := BucketInfo{Index: i}
		for e := b; e != nil; e = e.next {
			info.Entries = append(info.Entries, BucketEntry{Template: e.template, Hash: e.hash})
		}
		out[i] = info
	}
	return out
}
