package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sarfdb/sarf/sarf/index"
)

var (
	rootColor   = color.New(color.FgCyan, color.Bold)
	heightColor = color.New(color.Faint)
)

// Tree writes the AVL tree sideways as ASCII art: the right subtree is
// printed above its parent, the left subtree below, so ascending order
// reads bottom-up.
func Tree(w io.Writer, node *index.TreeNode) {
	if node == nil {
		fmt.Fprintln(w, "(empty tree)")
		return
	}
	if node.Right != nil {
		writeNode(w, node.Right, "", false)
	}
	writeLabel(w, node, "")
	if node.Left != nil {
		writeNode(w, node.Left, "", true)
	}
}

func writeNode(w io.Writer, n *index.TreeNode, prefix string, isLeft bool) {
	if n.Right != nil {
		next := prefix + "    "
		if isLeft {
			next = prefix + "│   "
		}
		writeNode(w, n.Right, next, false)
	}

	branch := "┌── "
	if isLeft {
		branch = "└── "
	}
	writeLabel(w, n, prefix+branch)

	if n.Left != nil {
		next := prefix + "│   "
		if isLeft {
			next = prefix + "    "
		}
		writeNode(w, n.Left, next, true)
	}
}

func writeLabel(w io.Writer, n *index.TreeNode, prefix string) {
	fmt.Fprintf(w, "%s%s %s\n",
		prefix,
		rootColor.Sprint(n.Root),
		heightColor.Sprintf("(h=%d)", n.Height),
	)
}
