// Package engine derives surface words by substituting root letters
// into pattern templates, and validates candidate words against the
// current template inventory.
//
// The engine is read-only over its pattern source: no operation mutates
// an index.
package engine

import (
	"github.com/sarfdb/sarf"
)

// PatternSource is the read surface the engine needs from the pattern
// index.
type PatternSource interface {
	// All enumerates every stored template. The enumeration order is
	// the tie-break order for validation.
	All() []sarf.Pattern
	// Contains reports whether a template is stored.
	Contains(p sarf.Pattern) bool
}

// Engine composes a pattern source with the substitution rules.
type Engine struct {
	patterns  PatternSource
	phonology bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPhonology enables the phonological refinement pass (weak-root and
// assimilation rules) after substitution. Off by default: the plain
// engine is a pure linear substitution.
func WithPhonology(on bool) Option {
	return func(e *Engine) { e.phonology = on }
}

// New returns an engine reading templates from src.
func New(src PatternSource, opts ...Option) *Engine {
	e := &Engine{patterns: src}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Substitute scans the template left to right and replaces each
// placeholder marker with the corresponding root letter; every other
// codepoint is copied verbatim. Unknown markers are literals, so future
// template vocabularies degrade gracefully instead of failing.
//
// Alongside the canonical Arabic markers (ف ع ل), the numeric markers
// 1/2/3 and the Latin legacy markers F/A/L are accepted.
func Substitute(root sarf.Root, p sarf.Pattern) string {
	out := make([]rune, 0, len(p))
	for _, c := range string(p) {
		switch c {
		case sarf.MarkerFirst, '1', 'F':
			out = append(out, root.Letter(0))
		case sarf.MarkerSecond, '2', 'A':
			out = append(out, root.Letter(1))
		case sarf.MarkerThird, '3', 'L':
			out = append(out, root.Letter(2))
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Apply generates the surface word for root and template, including the
// phonological pass when enabled.
func (e *Engine) Apply(root sarf.Root, p sarf.Pattern) string {
	word := Substitute(root, p)
	if e.phonology {
		word = ApplyPhonology(word, root)
	}
	return word
}

// Validate checks whether word can be derived from root by any stored
// template. It tries every template in All() order and returns the
// first one whose derivation matches word exactly. The first-match
// tie-break is enumeration-order-dependent, not a linguistic
// preference.
func (e *Engine) Validate(word string, root sarf.Root) (sarf.Pattern, bool) {
	for _, p := range e.patterns.All() {
		if e.Apply(root, p) == word {
			return p, true
		}
	}
	return "", false
}

// Derive generates a word for every stored template, pairing each with
// its template. Identical words from distinct templates are all kept:
// they represent distinct provenance.
func (e *Engine) Derive(root sarf.Root) []sarf.Derivation {
	all := e.patterns.All()
	out := make([]sarf.Derivation, 0, len(all))
	for _, p := range all {
		out = append(out, sarf.Derivation{Template: p, Word: e.Apply(root, p)})
	}
	return out
}

// DeriveSubset is Derive restricted to the given templates. Templates
// not present in the source are skipped silently and returned in the
// second result.
func (e *Engine) DeriveSubset(root sarf.Root, templates []sarf.Pattern) ([]sarf.Derivation, []sarf.Pattern) {
	out := make([]sarf.Derivation, 0, len(templates))
	var skipped []sarf.Pattern
	for _, p := range templates {
		if !e.patterns.Contains(p) {
			skipped = append(skipped, p)
			continue
		}
		out = append(out, sarf.Derivation{Template: p, Word: e.Apply(root, p)})
	}
	return out, skipped
}
