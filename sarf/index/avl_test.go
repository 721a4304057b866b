package index

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarfdb/sarf"
)

func TestRootIndexInsertSearch(t *testing.T) {
	tree := NewRootIndex()

	assert.True(t, tree.Insert(sarf.MustRoot("كتب")))
	assert.True(t, tree.Insert(sarf.MustRoot("درس")))
	assert.True(t, tree.Insert(sarf.MustRoot("علم")))

	assert.Equal(t, 3, tree.Len())
	assert.True(t, tree.Search(sarf.MustRoot("درس")))
	assert.False(t, tree.Search(sarf.MustRoot("قرأ")))
}

func TestSortedListing(t *testing.T) {
	tree := NewRootIndex()
	for _, s := range []string{"كتب", "درس", "علم"} {
		tree.Insert(sarf.MustRoot(s))
	}

	got := tree.InOrder()
	require.Len(t, got, 3)
	// Unicode codepoint order: د < ع < ك.
	assert.Equal(t, "درس", got[0].String())
	assert.Equal(t, "علم", got[1].String())
	assert.Equal(t, "كتب", got[2].String())
}

func TestDuplicateInsertIdempotent(t *testing.T) {
	tree := NewRootIndex()
	for _, s := range []string{"كتب", "درس", "علم", "قرأ", "فهم"} {
		tree.Insert(sarf.MustRoot(s))
	}

	before := tree.InOrder()
	heightBefore := tree.Height()

	assert.False(t, tree.Insert(sarf.MustRoot("درس")))
	assert.Equal(t, before, tree.InOrder())
	assert.Equal(t, heightBefore, tree.Height())
	assert.Equal(t, 5, tree.Len())
}

func TestDelete(t *testing.T) {
	roots := []string{"درس", "سمع", "علم", "فهم", "قرأ", "كتب", "نظر"}

	t.Run("Leaf", func(t *testing.T) {
		tree := buildTree(roots)
		assert.True(t, tree.Delete(sarf.MustRoot("درس")))
		assert.False(t, tree.Search(sarf.MustRoot("درس")))
		assert.Equal(t, 6, tree.Len())
		assert.True(t, checkBalance(tree.root))
	})

	t.Run("TwoChildren", func(t *testing.T) {
		tree := buildTree(roots)
		// The median root sits at the top with two children.
		require.True(t, tree.Delete(sarf.MustRoot("فهم")))
		assert.False(t, tree.Search(sarf.MustRoot("فهم")))
		assert.Equal(t, 6, tree.Len())
		assert.True(t, checkBalance(tree.root))

		// The remaining roots stay sorted.
		got := tree.InOrder()
		for i := 1; i < len(got); i++ {
			assert.Equal(t, -1, got[i-1].Compare(got[i]))
		}
	})

	t.Run("Absent", func(t *testing.T) {
		tree := buildTree(roots)
		assert.False(t, tree.Delete(sarf.MustRoot("ذهب")))
		assert.Equal(t, 7, tree.Len())
	})

	t.Run("DrainAll", func(t *testing.T) {
		tree := buildTree(roots)
		for _, s := range roots {
			assert.True(t, tree.Delete(sarf.MustRoot(s)))
			assert.True(t, checkBalance(tree.root))
		}
		assert.Equal(t, 0, tree.Len())
		assert.Equal(t, 0, tree.Height())
	})
}

// TestBalanceInvariant drives random insert/delete sequences and checks
// the AVL invariant after every mutation.
func TestBalanceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	letters := []rune("ابتثجحخدذرزسشصضطظعغفقكلمنهوي")

	randomRoot := func() sarf.Root {
		return sarf.MustRoot(string([]rune{
			letters[rng.Intn(len(letters))],
			letters[rng.Intn(len(letters))],
			letters[rng.Intn(len(letters))],
		}))
	}

	tree := NewRootIndex()
	var present []sarf.Root

	for i := 0; i < 2000; i++ {
		if len(present) > 0 && rng.Intn(3) == 0 {
			j := rng.Intn(len(present))
			tree.Delete(present[j])
			present = append(present[:j], present[j+1:]...)
		} else {
			r := randomRoot()
			if tree.Insert(r) {
				present = append(present, r)
			}
		}
		if !checkBalance(tree.root) {
			t.Fatalf("AVL invariant violated after operation %d", i)
		}
		if tree.Len() != len(present) {
			t.Fatalf("size mismatch after operation %d: tree %d, want %d", i, tree.Len(), len(present))
		}
	}

	// Height stays within the AVL bound 1.44*log2(n+2).
	if n := tree.Len(); n > 0 {
		bound := 1.4405 * math.Log2(float64(n)+2)
		assert.LessOrEqual(t, float64(tree.Height()), bound)
	}
}

func TestWordLedger(t *testing.T) {
	tree := NewRootIndex()
	root := sarf.MustRoot("كتب")
	tree.Insert(root)

	t.Run("AddAndIncrement", func(t *testing.T) {
		assert.True(t, tree.AddWord(root, "كاتب", "فاعل"))
		assert.True(t, tree.AddWord(root, "كاتب", "فاعل"))
		assert.True(t, tree.AddWord(root, "مكتوب", "مفعول"))

		words, ok := tree.Words(root)
		require.True(t, ok)
		assert.Equal(t, sarf.WordInfo{Template: "فاعل", Frequency: 2}, words["كاتب"])
		assert.Equal(t, sarf.WordInfo{Template: "مفعول", Frequency: 1}, words["مكتوب"])
	})

	t.Run("UnknownRoot", func(t *testing.T) {
		assert.False(t, tree.AddWord(sarf.MustRoot("درس"), "دارس", "فاعل"))
		_, ok := tree.Words(sarf.MustRoot("درس"))
		assert.False(t, ok)
	})

	t.Run("SurvivesSuccessorReplacement", func(t *testing.T) {
		tree := buildTree([]string{"درس", "سمع", "علم", "فهم", "قرأ", "كتب", "نظر"})
		target := sarf.MustRoot("قرأ")
		tree.AddWord(target, "قارئ", "فاعل")

		// Delete a two-child ancestor; the successor node carrying the
		// ledger moves up the tree.
		require.True(t, tree.Delete(sarf.MustRoot("فهم")))
		words, ok := tree.Words(target)
		require.True(t, ok)
		assert.Contains(t, words, "قارئ")
	})
}

func TestStructure(t *testing.T) {
	tree := NewRootIndex()
	assert.Nil(t, tree.Structure())

	for _, s := range []string{"درس", "علم", "كتب"} {
		tree.Insert(sarf.MustRoot(s))
	}
	snap := tree.Structure()
	require.NotNil(t, snap)
	// Inserting in ascending order forces a left rotation; the middle
	// root ends up on top.
	assert.Equal(t, "علم", snap.Root)
	assert.Equal(t, 2, snap.Height)
	require.NotNil(t, snap.Left)
	require.NotNil(t, snap.Right)
	assert.Equal(t, "درس", snap.Left.Root)
	assert.Equal(t, "كتب", snap.Right.Root)
}

func buildTree(roots []string) *RootIndex {
	tree := NewRootIndex()
	for _, s := range roots {
		tree.Insert(sarf.MustRoot(s))
	}
	return tree
}
