package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarfdb/sarf"
	"github.com/sarfdb/sarf/sarf/storage"
)

func newLexicon(t *testing.T, opts ...Option) *Lexicon {
	t.Helper()
	lex, err := New(opts...)
	require.NoError(t, err)
	return lex
}

// TestEndToEndScenario is the canonical walkthrough: two roots, one
// pattern, generation and validation both ways.
func TestEndToEndScenario(t *testing.T) {
	lex := newLexicon(t)

	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertRoot("درس"))
	require.NoError(t, lex.InsertPattern("فاعل"))

	word, err := lex.Generate("كتب", "فاعل")
	require.NoError(t, err)
	assert.Equal(t, "كاتب", word)

	word, err = lex.Generate("درس", "فاعل")
	require.NoError(t, err)
	assert.Equal(t, "دارس", word)

	template, valid, err := lex.ValidateWord("كاتب", "كتب")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, sarf.Pattern("فاعل"), template)

	_, valid, err = lex.ValidateWord("زائف", "كتب")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRootValidation(t *testing.T) {
	lex := newLexicon(t)

	t.Run("WrongLength", func(t *testing.T) {
		assert.ErrorIs(t, lex.InsertRoot("كتبت"), sarf.ErrInvalidRoot)
		assert.ErrorIs(t, lex.InsertRoot("كت"), sarf.ErrInvalidRoot)
	})

	t.Run("NonArabic", func(t *testing.T) {
		assert.ErrorIs(t, lex.InsertRoot("abc"), sarf.ErrInvalidRoot)
	})

	t.Run("Duplicate", func(t *testing.T) {
		require.NoError(t, lex.InsertRoot("كتب"))
		assert.ErrorIs(t, lex.InsertRoot("كتب"), sarf.ErrDuplicate)
		assert.Equal(t, 1, lex.RootCount())
	})

	t.Run("DeleteAbsent", func(t *testing.T) {
		assert.ErrorIs(t, lex.DeleteRoot("درس"), sarf.ErrNotFound)
	})
}

func TestPatternValidation(t *testing.T) {
	lex := newLexicon(t)

	assert.ErrorIs(t, lex.InsertPattern(""), sarf.ErrEmptyPattern)

	require.NoError(t, lex.InsertPattern("فاعل"))
	assert.ErrorIs(t, lex.InsertPattern("فاعل"), sarf.ErrDuplicate)
	assert.True(t, lex.LookupPattern("فاعل"))

	require.NoError(t, lex.RenamePattern("فاعل", "مفعول"))
	assert.False(t, lex.LookupPattern("فاعل"))
	assert.True(t, lex.LookupPattern("مفعول"))
	assert.ErrorIs(t, lex.RenamePattern("فاعل", "فعيل"), sarf.ErrNotFound)
	assert.ErrorIs(t, lex.RenamePattern("", "فعيل"), sarf.ErrNotFound)
}

func TestListRootsSorted(t *testing.T) {
	lex := newLexicon(t)
	for _, s := range []string{"كتب", "درس", "علم"} {
		require.NoError(t, lex.InsertRoot(s))
	}
	assert.Equal(t, []string{"درس", "علم", "كتب"}, lex.ListRoots())
}

func TestGenerateRequiresIndexedInputs(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertPattern("فاعل"))

	_, err := lex.Generate("درس", "فاعل")
	assert.ErrorIs(t, err, sarf.ErrNotFound)

	_, err = lex.Generate("كتب", "فعيل")
	assert.ErrorIs(t, err, sarf.ErrNotFound)
}

func TestDerivedWordLedger(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertPattern("فاعل"))
	require.NoError(t, lex.InsertPattern("مفعول"))

	_, err := lex.Generate("كتب", "فاعل")
	require.NoError(t, err)
	_, err = lex.Generate("كتب", "فاعل")
	require.NoError(t, err)

	derivations, err := lex.GenerateAll("كتب")
	require.NoError(t, err)
	assert.Len(t, derivations, 2)

	words, err := lex.DerivedWords("كتب")
	require.NoError(t, err)
	require.Contains(t, words, "كاتب")
	require.Contains(t, words, "مكتوب")
	// Two explicit generations plus one from GenerateAll.
	assert.Equal(t, 3, words["كاتب"].Frequency)
	assert.Equal(t, sarf.Pattern("فاعل"), words["كاتب"].Template)
}

func TestGenerateSubset(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertPattern("فاعل"))

	derivations, skipped, err := lex.GenerateSubset("كتب", []string{"فاعل", "فعيل"})
	require.NoError(t, err)
	require.Len(t, derivations, 1)
	assert.Equal(t, "كاتب", derivations[0].Word)
	assert.Equal(t, []string{"فعيل"}, skipped)
}

func TestUpdateRoot(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertRoot("درس"))
	require.NoError(t, lex.InsertPattern("فاعل"))
	_, err := lex.Generate("كتب", "فاعل")
	require.NoError(t, err)

	t.Run("CarriesLedger", func(t *testing.T) {
		require.NoError(t, lex.UpdateRoot("كتب", "قرأ"))
		assert.False(t, lex.SearchRoot("كتب"))
		assert.True(t, lex.SearchRoot("قرأ"))

		words, err := lex.DerivedWords("قرأ")
		require.NoError(t, err)
		assert.Contains(t, words, "كاتب")
	})

	t.Run("Conflicts", func(t *testing.T) {
		assert.ErrorIs(t, lex.UpdateRoot("قرأ", "درس"), sarf.ErrDuplicate)
		assert.ErrorIs(t, lex.UpdateRoot("قرأ", "قرأ"), sarf.ErrDuplicate)
		assert.ErrorIs(t, lex.UpdateRoot("كتب", "فهم"), sarf.ErrNotFound)
		assert.ErrorIs(t, lex.UpdateRoot("قرأ", "ab"), sarf.ErrInvalidRoot)
	})
}

func TestImportRoots(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))

	input := strings.Join([]string{
		"درس",
		"",
		"علم",
		"كتب",  // duplicate
		"قرأت", // too long
		"abc",  // not Arabic
	}, "\n")

	report, err := lex.ImportRoots(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 3, report.Skipped)
	assert.Len(t, report.Errors, 3)
	assert.Equal(t, 3, lex.RootCount())
}

func TestStatsSummary(t *testing.T) {
	lex := newLexicon(t)
	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertRoot("درس"))
	require.NoError(t, lex.InsertPattern("فاعل"))

	s := lex.Stats()
	assert.Equal(t, 2, s.TotalRoots)
	assert.Equal(t, 1, s.TotalPatterns)
	assert.Equal(t, 2, s.TreeHeight)
	assert.Greater(t, s.HashLoadFactor, 0.0)
}

// TestPersistenceRestart exercises the write-through store: a second
// lexicon over the same directory sees everything the first one wrote.
func TestPersistenceRestart(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewBadgerStore(dir)
	require.NoError(t, err)
	lex := newLexicon(t, WithStore(store))

	require.NoError(t, lex.InsertRoot("كتب"))
	require.NoError(t, lex.InsertRoot("درس"))
	require.NoError(t, lex.InsertPattern("فاعل"))
	_, err = lex.Generate("كتب", "فاعل")
	require.NoError(t, err)
	require.NoError(t, lex.DeleteRoot("درس"))
	require.NoError(t, lex.Close())

	store, err = storage.NewBadgerStore(dir)
	require.NoError(t, err)
	lex = newLexicon(t, WithStore(store))
	defer lex.Close()

	assert.Equal(t, []string{"كتب"}, lex.ListRoots())
	assert.True(t, lex.LookupPattern("فاعل"))

	words, err := lex.DerivedWords("كتب")
	require.NoError(t, err)
	assert.Equal(t, sarf.WordInfo{Template: "فاعل", Frequency: 1}, words["كاتب"])
}

func TestPhonologyOption(t *testing.T) {
	lex := newLexicon(t, WithPhonology(true))
	require.NoError(t, lex.InsertRoot("رمي"))
	require.NoError(t, lex.InsertPattern("فعل"))

	word, err := lex.Generate("رمي", "فعل")
	require.NoError(t, err)
	assert.Equal(t, "رمى", word)
}
