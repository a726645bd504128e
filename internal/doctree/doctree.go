// Package doctree nests a flat outline into a heading tree.
package doctree

import "github.com/dgallion1/docoutline/internal/outline"

// Tree is the root of a document outline.
type Tree struct {
	Title    string  // Inferred document title
	Children []*Node // Top-level headings
}

// Node is one heading and the headings nested under it.
type Node struct {
	Title    string        // Heading text
	Level    outline.Level // H1-H4
	Page     int           // 0-based page index
	Children []*Node
}

// FromResult builds a tree from res.Outline. A heading nests under the
// closest preceding heading of a shallower level; a document that skips
// levels (H1 then H3) nests the deeper heading directly under the shallower
// one.
func FromResult(res *outline.Result) *Tree {
	tree := &Tree{Title: res.Title}

	type stackEntry struct {
		node  *Node
		depth int
	}

	// Root is depth 0, so every heading nests under it.
	root := &Node{Title: res.Title}
	stack := []stackEntry{{node: root, depth: 0}}

	for _, e := range res.Outline {
		depth := e.Level.Depth()
		if depth == 0 {
			continue
		}
		n := &Node{Title: e.Text, Level: e.Level, Page: e.Page}

		// Pop until the top of the stack is shallower than this heading.
		for len(stack) > 1 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, n)
		stack = append(stack, stackEntry{node: n, depth: depth})
	}

	tree.Children = root.Children
	return tree
}

// Walk visits every node depth-first in document order. depth is 1 for
// top-level nodes.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(t.Children, 1)
}
