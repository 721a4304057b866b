package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarfdb/sarf"
)

func TestBadgerStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(dir)
	require.NoError(t, err)

	ktb := sarf.MustRoot("كتب")
	drs := sarf.MustRoot("درس")

	require.NoError(t, store.SaveRoot(ktb, map[string]sarf.WordInfo{
		"كاتب": {Template: "فاعل", Frequency: 2},
	}))
	require.NoError(t, store.SaveRoot(drs, nil))
	require.NoError(t, store.SavePattern("فاعل"))
	require.NoError(t, store.SavePattern("مفعول"))
	require.NoError(t, store.Close())

	// Reopen and read everything back.
	store, err = NewBadgerStore(dir)
	require.NoError(t, err)
	defer store.Close()

	snap, err := store.Load()
	require.NoError(t, err)

	require.Len(t, snap.Roots, 2)
	byRoot := map[string]RootRecord{}
	for _, rec := range snap.Roots {
		byRoot[rec.Root] = rec
	}
	assert.Equal(t, sarf.WordInfo{Template: "فاعل", Frequency: 2}, byRoot["كتب"].Words["كاتب"])
	assert.Empty(t, byRoot["درس"].Words)

	assert.ElementsMatch(t, []sarf.Pattern{"فاعل", "مفعول"}, snap.Patterns)
}

func TestBadgerStoreOverwrite(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ktb := sarf.MustRoot("كتب")
	require.NoError(t, store.SaveRoot(ktb, nil))
	require.NoError(t, store.SaveRoot(ktb, map[string]sarf.WordInfo{
		"مكتوب": {Template: "مفعول", Frequency: 1},
	}))

	snap, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snap.Roots, 1)
	assert.Contains(t, snap.Roots[0].Words, "مكتوب")
}

func TestBadgerStoreDelete(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveRoot(sarf.MustRoot("كتب"), nil))
	require.NoError(t, store.SavePattern("فاعل"))

	require.NoError(t, store.DeleteRoot(sarf.MustRoot("كتب")))
	require.NoError(t, store.DeletePattern("فاعل"))

	// Deleting absent keys is not an error.
	require.NoError(t, store.DeleteRoot(sarf.MustRoot("درس")))
	require.NoError(t, store.DeletePattern("فعيل"))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Roots)
	assert.Empty(t, snap.Patterns)
}
