package engine

import (
	"strings"

	"github.com/sarfdb/sarf"
)

// Weakness classifies a root by the position of its weak radical.
type Weakness int

const (
	Sound       Weakness = iota
	Assimilated          // C1 is weak (و/ي)
	Hollow               // C2 is weak
	Defective            // C3 is weak
	Doubled              // C2 == C3
)

func (w Weakness) String() string {
	switch w {
	case Assimilated:
		return "assimilated"
	case Hollow:
		return "hollow"
	case Defective:
		return "defective"
	case Doubled:
		return "doubled"
	default:
		return "sound"
	}
}

const (
	weakWaw = 'و'
	weakYa  = 'ي'

	fatha  = "َ" // َ
	damma  = "ُ" // ُ
	kasra  = "ِ" // ِ
	shadda = "ّ" // ّ
)

func isWeak(c rune) bool { return c == weakWaw || c == weakYa }

// emphatic (ص ض ط ظ), dental (د ذ ز) and labial (ب م) consonant sets
// drive the Form VIII and Form VII assimilation rules.
func isEmphatic(c rune) bool { return c == 'ص' || c == 'ض' || c == 'ط' || c == 'ظ' }
func isDental(c rune) bool   { return c == 'د' || c == 'ذ' || c == 'ز' }
func isLabial(c rune) bool   { return c == 'ب' || c == 'م' }

// Classify returns the weakness class of root. Position of the first
// weak radical wins; a doubled root requires no weak radical.
func Classify(root sarf.Root) Weakness {
	switch {
	case isWeak(root.Letter(0)):
		return Assimilated
	case isWeak(root.Letter(1)):
		return Hollow
	case isWeak(root.Letter(2)):
		return Defective
	case root.Letter(1) == root.Letter(2):
		return Doubled
	default:
		return Sound
	}
}

// ApplyPhonology refines a substituted word with the Arabic
// morphophonological rules, in order: weak-root structural changes,
// Form VIII assimilation, Form VII assimilation, shadda cleanup. The
// order is significant.
func ApplyPhonology(word string, root sarf.Root) string {
	switch Classify(root) {
	case Hollow:
		word = applyHollow(word, root)
	case Defective:
		word = applyDefective(word, root)
	}
	word = applyForm8(word, root)
	word = applyForm7(word, root)
	return strings.ReplaceAll(word, shadda+shadda, shadda)
}

// applyForm8 handles the Form VIII infix ت after C1:
// emphatic C1 spreads (ت→ط), dental C1 assimilates with shadda, and ثت
// collapses to ثّ.
func applyForm8(word string, root sarf.Root) string {
	c1 := string(root.Letter(0))
	switch {
	case isEmphatic(root.Letter(0)):
		word = strings.ReplaceAll(word, c1+"ت", c1+"ط")
	case isDental(root.Letter(0)):
		word = strings.ReplaceAll(word, c1+"ت", c1+shadda)
	case root.Letter(0) == 'ث':
		word = strings.ReplaceAll(word, "ثت", "ث"+shadda)
	}
	return word
}

// applyForm7 assimilates the Form VII prefix ن to م before a labial C1
// (انبعث → امبعث).
func applyForm7(word string, root sarf.Root) string {
	if !isLabial(root.Letter(0)) {
		return word
	}
	c1 := string(root.Letter(0))
	return strings.ReplaceAll(word, "ن"+c1, "م"+c1)
}

// applyHollow turns a short vowel + weak C2 into the matching long
// vowel (قول → قال, بيع → باع).
func applyHollow(word string, root sarf.Root) string {
	c1 := string(root.Letter(0))
	switch root.Letter(1) {
	case weakWaw:
		word = strings.ReplaceAll(word, c1+fatha+"و", c1+fatha+"ا")
		word = strings.ReplaceAll(word, c1+kasra+"و", c1+kasra+"ي")
	case weakYa:
		word = strings.ReplaceAll(word, c1+fatha+"ي", c1+fatha+"ا")
		word = strings.ReplaceAll(word, c1+damma+"ي", c1+damma+"و")
	}
	return word
}

// applyDefective rewrites a final weak C3 as ى (رمي → رمى).
func applyDefective(word string, root sarf.Root) string {
	c3 := string(root.Letter(2))
	if strings.HasSuffix(word, c3) {
		return strings.TrimSuffix(word, c3) + "ى"
	}
	return word
}
