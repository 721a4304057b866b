// Package lexicon wires the root index, the pattern table and the
// derivation engine into one constructed context object. It is the only
// entry point collaborators use: it validates input before the core is
// reached, serializes access with a single lock, and writes mutations
// through to an optional store.
package lexicon

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sarfdb/sarf"
	"github.com/sarfdb/sarf/sarf/engine"
	"github.com/sarfdb/sarf/sarf/index"
	"github.com/sarfdb/sarf/sarf/storage"
)

// Lexicon owns both indices and the engine. All exported methods are
// safe for concurrent use; one RWMutex guards both indices since the
// engine reads both.
type Lexicon struct {
	mu       sync.RWMutex
	roots    *index.RootIndex
	patterns *index.PatternTable
	engine   *engine.Engine
	store    storage.Store
	log      zerolog.Logger
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithStore attaches a persistence store. Mutations are written through
// after they succeed; the store is replayed into the indices at
// construction time.
func WithStore(s storage.Store) Option {
	return func(l *Lexicon) { l.store = s }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Lexicon) { l.log = log }
}

// WithPhonology enables the phonological refinement pass in the engine.
func WithPhonology(on bool) Option {
	return func(l *Lexicon) {
		l.engine = engine.New(l.patterns, engine.WithPhonology(on))
	}
}

// New constructs a Lexicon with empty indices, then replays the store
// into them when one is attached.
func New(opts ...Option) (*Lexicon, error) {
	l := &Lexicon{
		roots:    index.NewRootIndex(),
		patterns: index.NewPatternTable(),
		log:      zerolog.Nop(),
	}
	l.engine = engine.New(l.patterns)
	for _, opt := range opts {
		opt(l)
	}

	if l.store != nil {
		if err := l.replay(); err != nil {
			return nil, fmt.Errorf("failed to load persisted state: %w", err)
		}
	}
	return l, nil
}

// replay loads the persisted snapshot into the fresh indices.
func (l *Lexicon) replay() error {
	snap, err := l.store.Load()
	if err != nil {
		return err
	}
	for _, rec := range snap.Roots {
		root, err := sarf.NewRoot(rec.Root)
		if err != nil {
			l.log.Warn().Str("root", rec.Root).Msg("skipping malformed persisted root")
			continue
		}
		l.roots.Insert(root)
		if len(rec.Words) > 0 {
			l.roots.SetWords(root, rec.Words)
		}
	}
	for _, p := range snap.Patterns {
		l.patterns.Put(p)
	}
	l.log.Info().
		Int("roots", l.roots.Len()).
		Int("patterns", l.patterns.Len()).
		Msg("lexicon loaded")
	return nil
}

// Close releases the attached store, if any.
func (l *Lexicon) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// parseRoot validates s as a triliteral Arabic root.
func parseRoot(s string) (sarf.Root, error) {
	root, err := sarf.NewRoot(s)
	if err != nil {
		return sarf.Root{}, err
	}
	if !sarf.IsArabic(s) {
		return sarf.Root{}, fmt.Errorf("%w: %q is not Arabic script", sarf.ErrInvalidRoot, s)
	}
	return root, nil
}

// persistRoot writes the root and its current ledger through to the
// store. Persistence failures do not undo the in-memory mutation; they
// are reported through the log.
func (l *Lexicon) persistRoot(root sarf.Root) {
	if l.store == nil {
		return
	}
	words, _ := l.roots.Words(root)
	if err := l.store.SaveRoot(root, words); err != nil {
		l.log.Warn().Err(err).Str("root", root.String()).Msg("failed to persist root")
	}
}

// ---------------------------------------------------------------------
// Root index operations
// ---------------------------------------------------------------------

// InsertRoot adds a root. ErrInvalidRoot for malformed input,
// ErrDuplicate when already present.
func (l *Lexicon) InsertRoot(s string) error {
	root, err := parseRoot(s)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Insert(root) {
		return fmt.Errorf("root %q: %w", s, sarf.ErrDuplicate)
	}
	l.persistRoot(root)
	return nil
}

// DeleteRoot removes a root and its ledger.
func (l *Lexicon) DeleteRoot(s string) error {
	root, err := sarf.NewRoot(s)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Delete(root) {
		return fmt.Errorf("root %q: %w", s, sarf.ErrNotFound)
	}
	if l.store != nil {
		if err := l.store.DeleteRoot(root); err != nil {
			l.log.Warn().Err(err).Str("root", s).Msg("failed to delete persisted root")
		}
	}
	return nil
}

// UpdateRoot renames a root, carrying its derived-word ledger over to
// the new key. The template-style rename semantics apply: delete old,
// insert new.
func (l *Lexicon) UpdateRoot(oldRoot, newRoot string) error {
	from, err := sarf.NewRoot(oldRoot)
	if err != nil {
		return err
	}
	to, err := parseRoot(newRoot)
	if err != nil {
		return err
	}
	if oldRoot == newRoot {
		return fmt.Errorf("root %q: %w", newRoot, sarf.ErrDuplicate)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Search(from) {
		return fmt.Errorf("root %q: %w", oldRoot, sarf.ErrNotFound)
	}
	if l.roots.Search(to) {
		return fmt.Errorf("root %q: %w", newRoot, sarf.ErrDuplicate)
	}

	words, _ := l.roots.Words(from)
	l.roots.Delete(from)
	l.roots.Insert(to)
	l.roots.SetWords(to, words)

	if l.store != nil {
		if err := l.store.DeleteRoot(from); err != nil {
			l.log.Warn().Err(err).Str("root", oldRoot).Msg("failed to delete persisted root")
		}
	}
	l.persistRoot(to)
	return nil
}

// SearchRoot reports whether s is a stored root. Malformed input is
// simply absent.
func (l *Lexicon) SearchRoot(s string) bool {
	root, err := sarf.NewRoot(s)
	if err != nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.roots.Search(root)
}

// ListRoots returns all roots in ascending codepoint order.
func (l *Lexicon) ListRoots() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	roots := l.roots.InOrder()
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = r.String()
	}
	return out
}

// RootEntries returns every root with its derived-word ledger, in
// ascending order.
func (l *Lexicon) RootEntries() []index.RootEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.roots.Entries()
	// Copy the ledgers so callers can hold the result past the lock.
	for i := range entries {
		words := make(map[string]sarf.WordInfo, len(entries[i].Words))
		for w, info := range entries[i].Words {
			words[w] = info
		}
		entries[i].Words = words
	}
	return entries
}

// DerivedWords returns the ledger for one root.
func (l *Lexicon) DerivedWords(s string) (map[string]sarf.WordInfo, error) {
	root, err := sarf.NewRoot(s)
	if err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	words, ok := l.roots.Words(root)
	if !ok {
		return nil, fmt.Errorf("root %q: %w", s, sarf.ErrNotFound)
	}
	out := make(map[string]sarf.WordInfo, len(words))
	for w, info := range words {
		out[w] = info
	}
	return out, nil
}

// TreeHeight returns the AVL tree height, 0 when empty.
func (l *Lexicon) TreeHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.roots.Height()
}

// RootCount returns the number of stored roots.
func (l *Lexicon) RootCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.roots.Len()
}

// TreeStructure returns a plain-data snapshot of the tree for
// visualization.
func (l *Lexicon) TreeStructure() *index.TreeNode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.roots.Structure()
}

// ---------------------------------------------------------------------
// Pattern index operations
// ---------------------------------------------------------------------

// InsertPattern adds a template. ErrEmptyPattern for empty input,
// ErrDuplicate when the identical template is already stored.
func (l *Lexicon) InsertPattern(template string) error {
	if template == "" {
		return sarf.ErrEmptyPattern
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	p := sarf.Pattern(template)
	if !l.patterns.Put(p) {
		return fmt.Errorf("pattern %q: %w", template, sarf.ErrDuplicate)
	}
	if l.store != nil {
		if err := l.store.SavePattern(p); err != nil {
			l.log.Warn().Err(err).Str("pattern", template).Msg("failed to persist pattern")
		}
	}
	return nil
}

// DeletePattern removes a template.
func (l *Lexicon) DeletePattern(template string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := sarf.Pattern(template)
	if !l.patterns.Delete(p) {
		return fmt.Errorf("pattern %q: %w", template, sarf.ErrNotFound)
	}
	if l.store != nil {
		if err := l.store.DeletePattern(p); err != nil {
			l.log.Warn().Err(err).Str("pattern", template).Msg("failed to delete persisted pattern")
		}
	}
	return nil
}

// RenamePattern replaces one template text with another. The text is
// the key, so this is delete-old plus insert-new.
func (l *Lexicon) RenamePattern(oldTemplate, newTemplate string) error {
	if newTemplate == "" {
		return sarf.ErrEmptyPattern
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	from, to := sarf.Pattern(oldTemplate), sarf.Pattern(newTemplate)
	if err := l.patterns.Rename(from, to); err != nil {
		return fmt.Errorf("pattern %q -> %q: %w", oldTemplate, newTemplate, err)
	}
	if l.store != nil && from != to {
		if err := l.store.DeletePattern(from); err != nil {
			l.log.Warn().Err(err).Str("pattern", oldTemplate).Msg("failed to delete persisted pattern")
		}
		if err := l.store.SavePattern(to); err != nil {
			l.log.Warn().Err(err).Str("pattern", newTemplate).Msg("failed to persist pattern")
		}
	}
	return nil
}

// LookupPattern reports whether the template is stored.
func (l *Lexicon) LookupPattern(template string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.patterns.Contains(sarf.Pattern(template))
}

// ListPatterns returns all templates in table enumeration order.
func (l *Lexicon) ListPatterns() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	patterns := l.patterns.All()
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = string(p)
	}
	return out
}

// TableStats returns the hash table diagnostics.
func (l *Lexicon) TableStats() index.TableStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.patterns.Stats()
}

// Buckets returns a snapshot of every bucket chain.
func (l *Lexicon) Buckets() []index.BucketInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.patterns.Buckets()
}

// ---------------------------------------------------------------------
// Derivation operations
// ---------------------------------------------------------------------

// Generate derives one word from a stored root and a stored template,
// and records it in the root's ledger.
func (l *Lexicon) Generate(rootStr, template string) (string, error) {
	root, err := sarf.NewRoot(rootStr)
	if err != nil {
		return "", err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Search(root) {
		return "", fmt.Errorf("root %q: %w", rootStr, sarf.ErrNotFound)
	}
	p := sarf.Pattern(template)
	if !l.patterns.Contains(p) {
		return "", fmt.Errorf("pattern %q: %w", template, sarf.ErrNotFound)
	}
	word := l.engine.Apply(root, p)
	l.roots.AddWord(root, word, p)
	l.persistRoot(root)
	return word, nil
}

// GenerateAll derives a word for every stored template and records each
// in the root's ledger.
func (l *Lexicon) GenerateAll(rootStr string) ([]sarf.Derivation, error) {
	root, err := sarf.NewRoot(rootStr)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Search(root) {
		return nil, fmt.Errorf("root %q: %w", rootStr, sarf.ErrNotFound)
	}
	derivations := l.engine.Derive(root)
	for _, d := range derivations {
		l.roots.AddWord(root, d.Word, d.Template)
	}
	if len(derivations) > 0 {
		l.persistRoot(root)
	}
	return derivations, nil
}

// GenerateSubset derives words for the given templates only. Templates
// not in the index are skipped silently and returned in the second
// result.
func (l *Lexicon) GenerateSubset(rootStr string, templates []string) ([]sarf.Derivation, []string, error) {
	root, err := sarf.NewRoot(rootStr)
	if err != nil {
		return nil, nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Search(root) {
		return nil, nil, fmt.Errorf("root %q: %w", rootStr, sarf.ErrNotFound)
	}
	ps := make([]sarf.Pattern, len(templates))
	for i, t := range templates {
		ps[i] = sarf.Pattern(t)
	}
	derivations, skippedPatterns := l.engine.DeriveSubset(root, ps)
	for _, d := range derivations {
		l.roots.AddWord(root, d.Word, d.Template)
	}
	if len(derivations) > 0 {
		l.persistRoot(root)
	}
	skipped := make([]string, len(skippedPatterns))
	for i, p := range skippedPatterns {
		skipped[i] = string(p)
	}
	return derivations, skipped, nil
}

// ValidateWord checks whether word derives from the stored root by any
// stored template. A negative result is not an error. Successful
// validations are recorded in the root's ledger.
func (l *Lexicon) ValidateWord(word, rootStr string) (sarf.Pattern, bool, error) {
	root, err := sarf.NewRoot(rootStr)
	if err != nil {
		return "", false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.roots.Search(root) {
		return "", false, fmt.Errorf("root %q: %w", rootStr, sarf.ErrNotFound)
	}
	template, ok := l.engine.Validate(word, root)
	if !ok {
		return "", false, nil
	}
	l.roots.AddWord(root, word, template)
	l.persistRoot(root)
	return template, true, nil
}

// Summary is the dashboard stat block.
type Summary struct {
	TotalRoots     int     `json:"total_roots"`
	TotalPatterns  int     `json:"total_patterns"`
	TreeHeight     int     `json:"avl_height"`
	HashLoadFactor float64 `json:"hash_load_factor"`
}

// Stats returns the dashboard summary.
func (l *Lexicon) Stats() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Summary{
		TotalRoots:     l.roots.Len(),
		TotalPatterns:  l.patterns.Len(),
		TreeHeight:     l.roots.Height(),
		HashLoadFactor: l.patterns.Stats().LoadFactor,
	}
}
