package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarfdb/sarf"
	"github.com/sarfdb/sarf/sarf/index"
)

// sliceSource is a PatternSource with caller-controlled enumeration
// order, for pinning down tie-break behavior.
type sliceSource []sarf.Pattern

func (s sliceSource) All() []sarf.Pattern { return s }

func (s sliceSource) Contains(p sarf.Pattern) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

func TestSubstitute(t *testing.T) {
	ktb := sarf.MustRoot("كتب")
	drs := sarf.MustRoot("درس")

	tests := []struct {
		name    string
		root    sarf.Root
		pattern sarf.Pattern
		want    string
	}{
		{"ActiveParticiple", ktb, "فاعل", "كاتب"},
		{"ActiveParticipleOtherRoot", drs, "فاعل", "دارس"},
		{"PassiveParticiple", ktb, "مفعول", "مكتوب"},
		{"RepeatedMarker", ktb, "فف", "كك"},
		{"NumericMarkers", ktb, "123", "كتب"},
		{"LatinLegacyMarkers", ktb, "FAL", "كتب"},
		{"LiteralsCopied", ktb, "مدرسة", "مدرسة"},
		{"EmptyPattern", ktb, "", ""},
		{"DiacriticsPassThrough", ktb, "فَاعِل", "كَاتِب"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.root, tt.pattern))
		})
	}
}

func TestValidate(t *testing.T) {
	ktb := sarf.MustRoot("كتب")

	t.Run("Valid", func(t *testing.T) {
		e := New(sliceSource{"فاعل", "مفعول"})
		template, ok := e.Validate("كاتب", ktb)
		require.True(t, ok)
		assert.Equal(t, sarf.Pattern("فاعل"), template)
	})

	t.Run("Invalid", func(t *testing.T) {
		e := New(sliceSource{"فاعل", "مفعول"})
		_, ok := e.Validate("زائف", ktb)
		assert.False(t, ok)
	})

	t.Run("EmptyInventory", func(t *testing.T) {
		e := New(sliceSource{})
		_, ok := e.Validate("كاتب", ktb)
		assert.False(t, ok)
	})

	t.Run("FirstMatchWins", func(t *testing.T) {
		// The all-literal template "كاتب" and the marker template
		// "فاعل" both derive "كاتب" from كتب; the first enumerated one
		// is reported.
		e := New(sliceSource{"كاتب", "فاعل"})
		template, ok := e.Validate("كاتب", ktb)
		require.True(t, ok)
		assert.Equal(t, sarf.Pattern("كاتب"), template)

		e = New(sliceSource{"فاعل", "كاتب"})
		template, ok = e.Validate("كاتب", ktb)
		require.True(t, ok)
		assert.Equal(t, sarf.Pattern("فاعل"), template)
	})
}

func TestDerive(t *testing.T) {
	ktb := sarf.MustRoot("كتب")
	e := New(sliceSource{"فاعل", "مفعول", "كاتب"})

	got := e.Derive(ktb)
	require.Len(t, got, 3)
	assert.Equal(t, sarf.Derivation{Template: "فاعل", Word: "كاتب"}, got[0])
	assert.Equal(t, sarf.Derivation{Template: "مفعول", Word: "مكتوب"}, got[1])
	// Duplicate output words are preserved: distinct provenance.
	assert.Equal(t, sarf.Derivation{Template: "كاتب", Word: "كاتب"}, got[2])
}

func TestDeriveSubset(t *testing.T) {
	ktb := sarf.MustRoot("كتب")
	e := New(sliceSource{"فاعل", "مفعول"})

	got, skipped := e.DeriveSubset(ktb, []sarf.Pattern{"مفعول", "فعيل", "فاعل"})
	require.Len(t, got, 2)
	assert.Equal(t, sarf.Derivation{Template: "مفعول", Word: "مكتوب"}, got[0])
	assert.Equal(t, sarf.Derivation{Template: "فاعل", Word: "كاتب"}, got[1])
	assert.Equal(t, []sarf.Pattern{"فعيل"}, skipped)
}

// TestRoundTrip checks generate/validate closure over a real pattern
// table: every derived word validates, and the reported template
// derives that exact word.
func TestRoundTrip(t *testing.T) {
	ht := index.NewPatternTable()
	for _, p := range []sarf.Pattern{"فاعل", "مفعول", "فعيل", "افتعل", "مفاعل"} {
		require.True(t, ht.Put(p))
	}
	e := New(ht)

	for _, rootStr := range []string{"كتب", "درس", "علم", "قرأ"} {
		root := sarf.MustRoot(rootStr)
		for _, d := range e.Derive(root) {
			template, ok := e.Validate(d.Word, root)
			require.True(t, ok, "word %q root %q", d.Word, rootStr)
			assert.Equal(t, d.Word, e.Apply(root, template))
		}
	}
}

func TestPhonologyOption(t *testing.T) {
	rmy := sarf.MustRoot("رمي")

	plain := New(sliceSource{"فعل"})
	refined := New(sliceSource{"فعل"}, WithPhonology(true))

	// Pure substitution keeps the weak final radical; the refinement
	// pass rewrites it.
	assert.Equal(t, "رمي", plain.Apply(rmy, "فعل"))
	assert.Equal(t, "رمى", refined.Apply(rmy, "فعل"))
}
