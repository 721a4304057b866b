// Package sarf defines the core value types of the morphology engine:
// triliteral roots, pattern templates and derivation results.
//
// Roots and patterns are plain immutable values. The indices that store
// them live in the index subpackage; derivation logic lives in engine.
package sarf

import (
	"fmt"
	"unicode/utf8"
)

// RootLength is the number of codepoints in a triliteral root.
const RootLength = 3

// Placeholder markers inside a pattern template. Each marker is replaced
// by the corresponding root letter during derivation; every other
// codepoint in a template is copied verbatim.
const (
	MarkerFirst  = 'ف' // Fā — first root letter
	MarkerSecond = 'ع' // ʿAyn — second root letter
	MarkerThird  = 'ل' // Lām — third root letter
)

// Root is an immutable sequence of exactly three Unicode codepoints.
// Ordering and equality follow codepoint-sequence lexicographic order,
// which for UTF-8 encoded strings coincides with byte order.
type Root struct {
	letters [RootLength]rune
}

// NewRoot parses s into a Root. It fails if s is not exactly three
// codepoints long.
func NewRoot(s string) (Root, error) {
	if utf8.RuneCountInString(s) != RootLength {
		return Root{}, fmt.Errorf("%w: %q has %d codepoints, want %d",
			ErrInvalidRoot, s, utf8.RuneCountInString(s), RootLength)
	}
	var r Root
	i := 0
	for _, c := range s {
		r.letters[i] = c
		i++
	}
	return r, nil
}

// MustRoot is NewRoot that panics on malformed input. For tests and
// literals only.
func MustRoot(s string) Root {
	r, err := NewRoot(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Letter returns the root letter at position i (0-based).
func (r Root) Letter(i int) rune {
	return r.letters[i]
}

// String returns the root as a string.
func (r Root) String() string {
	return string(r.letters[:])
}

// Compare returns -1, 0 or 1 ordering r against other by codepoint
// sequence.
func (r Root) Compare(other Root) int {
	for i := 0; i < RootLength; i++ {
		if r.letters[i] < other.letters[i] {
			return -1
		}
		if r.letters[i] > other.letters[i] {
			return 1
		}
	}
	return 0
}

// Pattern is an immutable derivation template. The template text is its
// own identity; there is no separate name.
type Pattern string

// String returns the template text.
func (p Pattern) String() string { return string(p) }

// Derivation pairs a generated word with the template that produced it.
type Derivation struct {
	Template Pattern `json:"template"`
	Word     string  `json:"generated_word"`
}

// WordInfo records a validated or generated surface word attached to a
// root: the template it came from and how often it has been seen.
type WordInfo struct {
	Template  Pattern `json:"template"`
	Frequency int     `json:"frequency"`
}

// IsArabic reports whether s is non-empty and consists entirely of
// codepoints from the Arabic blocks (Basic, Supplement, Extended-A).
func IsArabic(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isArabicRune(c) {
			return false
		}
	}
	return true
}

func isArabicRune(c rune) bool {
	return (c >= 0x0600 && c <= 0x06FF) ||
		(c >= 0x0750 && c <= 0x077F) ||
		(c >= 0x08A0 && c <= 0x08FF)
}
