// Package index implements the two in-memory indices of the morphology
// engine: an AVL tree over triliteral roots and a chained hash table
// over pattern templates.
//
// Neither index performs input validation or synchronization; callers
// hold exclusive access during any single operation and validate root
// length before insertion.
package index

import (
	"github.com/sarfdb/sarf"
)

// rootNode is a node of the AVL tree. Each node exclusively owns its
// children; rotations re-parent the three involved references and never
// copy key data.
type rootNode struct {
	key    sarf.Root
	left   *rootNode
	right  *rootNode
	height int
	// words ledgers the surface words validated or generated for this
	// root, keyed by the word itself.
	words map[string]sarf.WordInfo
}

func newRootNode(key sarf.Root) *rootNode {
	return &rootNode{key: key, height: 1, words: make(map[string]sarf.WordInfo)}
}

// RootIndex is a self-balancing binary search tree over roots, ordered
// by codepoint-sequence comparison. The zero value is not usable; use
// NewRootIndex.
type RootIndex struct {
	root *rootNode
	size int
}

// NewRootIndex returns an empty root index.
func NewRootIndex() *RootIndex {
	return &RootIndex{}
}

// Len returns the number of roots stored.
func (t *RootIndex) Len() int { return t.size }

// Height returns the cached height of the tree, 0 when empty.
func (t *RootIndex) Height() int { return height(t.root) }

func height(n *rootNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *rootNode) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func recomputeHeight(n *rootNode) {
	hl, hr := height(n.left), height(n.right)
	if hl > hr {
		n.height = hl + 1
	} else {
		n.height = hr + 1
	}
}

// rotateRight re-parents n.left above n. Heights of the two moved nodes
// are recomputed; nothing else changes.
func rotateRight(n *rootNode) *rootNode {
	l := n.left
	n.left = l.right
	l.right = n
	recomputeHeight(n)
	recomputeHeight(l)
	return l
}

func rotateLeft(n *rootNode) *rootNode {
	r := n.right
	n.right = r.left
	r.left = n
	recomputeHeight(n)
	recomputeHeight(r)
	return r
}

// rebalance restores the AVL invariant |bf| <= 1 at n after a mutation
// in one of its subtrees. The four cases are decided by the balance
// factor of the heavy child, which covers both the insert and the
// delete path.
func rebalance(n *rootNode) *rootNode {
	recomputeHeight(n)
	bf := balanceFactor(n)

	if bf > 1 {
		if balanceFactor(n.left) >= 0 {
			return rotateRight(n) // Left-Left
		}
		n.left = rotateLeft(n.left) // Left-Right
		return rotateRight(n)
	}
	if bf < -1 {
		if balanceFactor(n.right) <= 0 {
			return rotateLeft(n) // Right-Right
		}
		n.right = rotateRight(n.right) // Right-Left
		return rotateLeft(n)
	}
	return n
}

// Insert adds root to the index. It reports false if the root was
// already present, in which case the tree is unchanged.
func (t *RootIndex) Insert(root sarf.Root) bool {
	var inserted bool
	t.root, inserted = insertNode(t.root, root)
	if inserted {
		t.size++
	}
	return inserted
}

func insertNode(n *rootNode, key sarf.Root) (*rootNode, bool) {
	if n == nil {
		return newRootNode(key), true
	}
	var inserted bool
	switch cmp := key.Compare(n.key); {
	case cmp < 0:
		n.left, inserted = insertNode(n.left, key)
	case cmp > 0:
		n.right, inserted = insertNode(n.right, key)
	default:
		return n, false
	}
	if !inserted {
		return n, false
	}
	return rebalance(n), true
}

// Search reports whether root is present.
func (t *RootIndex) Search(root sarf.Root) bool {
	return t.lookup(root) != nil
}

func (t *RootIndex) lookup(root sarf.Root) *rootNode {
	n := t.root
	for n != nil {
		switch cmp := root.Compare(n.key); {
		case cmp < 0:
			n = n.left
		case cmp > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Delete removes root from the index, rebalancing every ancestor on the
// way back up. It reports false if the root was not present.
func (t *RootIndex) Delete(root sarf.Root) bool {
	var deleted bool
	t.root, deleted = deleteNode(t.root, root)
	if deleted {
		t.size--
	}
	return deleted
}

func deleteNode(n *rootNode, key sarf.Root) (*rootNode, bool) {
	if n == nil {
		return nil, false
	}
	var deleted bool
	switch cmp := key.Compare(n.key); {
	case cmp < 0:
		n.left, deleted = deleteNode(n.left, key)
	case cmp > 0:
		n.right, deleted = deleteNode(n.right, key)
	default:
		deleted = true
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		// Two children: replace with the in-order successor, carrying
		// its word ledger along, then delete the successor from the
		// right subtree.
		succ := minNode(n.right)
		n.key = succ.key
		n.words = succ.words
		n.right, _ = deleteNode(n.right, succ.key)
	}
	if !deleted {
		return n, false
	}
	return rebalance(n), true
}

func minNode(n *rootNode) *rootNode {
	for n.left != nil {
		n = n.left
	}
	return n
}

// InOrder returns all roots in ascending codepoint order. This is the
// canonical "all roots" listing.
func (t *RootIndex) InOrder() []sarf.Root {
	out := make([]sarf.Root, 0, t.size)
	var walk func(n *rootNode)
	walk = func(n *rootNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.key)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// RootEntry is a root together with its derived-word ledger, as emitted
// by Entries.
type RootEntry struct {
	Root  string                   `json:"root"`
	Words map[string]sarf.WordInfo `json:"derived_words"`
}

// Entries returns every root with its word ledger, in ascending order.
// The returned maps alias the live ledgers; callers must not mutate
// them.
func (t *RootIndex) Entries() []RootEntry {
	out := make([]RootEntry, 0, t.size)
	var walk func(n *rootNode)
	walk = func(n *rootNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, RootEntry{Root: n.key.String(), Words: n.words})
		walk(n.right)
	}
	walk(t.root)
	return out
}

// AddWord records a derived word under root, creating the ledger entry
// or incrementing its frequency. It reports false if the root is not in
// the index.
func (t *RootIndex) AddWord(root sarf.Root, word string, template sarf.Pattern) bool {
	n := t.lookup(root)
	if n == nil {
		return false
	}
	if info, ok := n.words[word]; ok {
		info.Frequency++
		n.words[word] = info
		return true
	}
	n.words[word] = sarf.WordInfo{Template: template, Frequency: 1}
	return true
}

// Words returns the derived-word ledger for root. The second result is
// false when the root is absent. The returned map aliases the live
// ledger.
func (t *RootIndex) Words(root sarf.Root) (map[string]sarf.WordInfo, bool) {
	n := t.lookup(root)
	if n == nil {
		return nil, false
	}
	return n.words, true
}

// SetWords replaces the derived-word ledger for root. Used when a root
// is renamed and its ledger carried over.
func (t *RootIndex) SetWords(root sarf.Root, words map[string]sarf.WordInfo) bool {
	n := t.lookup(root)
	if n == nil {
		return false
	}
	if words == nil {
		words = make(map[string]sarf.WordInfo)
	}
	n.words = words
	return true
}

// TreeNode is a plain-data snapshot of a tree node for visualization.
type TreeNode struct {
	Root   string    `json:"root"`
	Height int       `json:"height"`
	Left   *TreeNode `json:"left,omitempty"`
	Right  *TreeNode `json:"right,omitempty"`
}

// Structure returns a snapshot of the whole tree, or nil when empty.
func (t *RootIndex) Structure() *TreeNode {
	var snap func(n *rootNode) *TreeNode
	snap = func(n *rootNode) *TreeNode {
		if n == nil {
			return nil
		}
		return &TreeNode{
			Root:   n.key.String(),
			Height: n.height,
			Left:   snap(n.left),
			Right:  snap(n.right),
		}
	}
	return snap(t.root)
}

// checkBalance verifies the AVL invariants below n. Test hook.
func checkBalance(n *rootNode) bool {
	if n == nil {
		return true
	}
	hl, hr := height(n.left), height(n.right)
	bf := hl - hr
	if bf < -1 || bf > 1 {
		return false
	}
	want := hl
	if hr > hl {
		want = hr
	}
	if n.height != want+1 {
		return false
	}
	return checkBalance(n.left) && checkBalance(n.right)
}
