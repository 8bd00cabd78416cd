package parser

import (
	"github.com/ludo-technologies/codesim/domain"
)

// Point is a zero-based row/column position in the source
type Point struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// Node is one record of the tree arena. Parent and Children hold indices into
// SyntaxTree.Nodes; the root has Parent == -1.
type Node struct {
	Type      string
	Parent    int
	Children  []int
	StartByte uint32
	EndByte   uint32
	Start     Point
	End       Point
	IsNamed   bool
	IsError   bool
	IsMissing bool
}

// SyntaxTree is a parse tree stored as a flat node array in preorder.
// Index 0 is the root. The tree is never mutated after parsing.
type SyntaxTree struct {
	Nodes    []Node
	Source   []byte
	Language domain.Language
}

// Len returns the number of nodes
func (t *SyntaxTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Root returns the root index, or -1 for an empty tree
func (t *SyntaxTree) Root() int {
	if t.Len() == 0 {
		return -1
	}
	return 0
}

// IsLeaf reports whether node i has no children
func (t *SyntaxTree) IsLeaf(i int) bool {
	return len(t.Nodes[i].Children) == 0
}

// Text returns the literal source text spanned by node i
func (t *SyntaxTree) Text(i int) string {
	n := &t.Nodes[i]
	if int(n.EndByte) > len(t.Source) || n.StartByte > n.EndByte {
		return ""
	}
	return string(t.Source[n.StartByte:n.EndByte])
}

// Walk visits nodes in preorder without recursion. Returning false from fn
// skips the node's subtree.
func (t *SyntaxTree) Walk(fn func(i int) bool) {
	if t.Len() == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(i) {
			continue
		}
		children := t.Nodes[i].Children
		for c := len(children) - 1; c >= 0; c-- {
			stack = append(stack, children[c])
		}
	}
}

// Leaves returns leaf indices in preorder
func (t *SyntaxTree) Leaves() []int {
	var leaves []int
	t.Walk(func(i int) bool {
		if t.IsLeaf(i) {
			leaves = append(leaves, i)
		}
		return true
	})
	return leaves
}

// EdgeCount returns the number of parent/child pairs
func (t *SyntaxTree) EdgeCount() int {
	edges := 0
	for i := range t.Nodes {
		edges += len(t.Nodes[i].Children)
	}
	return edges
}

// ErrorCount returns how many ERROR or MISSING nodes the parser produced
func (t *SyntaxTree) ErrorCount() int {
	count := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsError || t.Nodes[i].IsMissing {
			count++
		}
	}
	return count
}

// HasErrors reports whether the source had syntax errors
func (t *SyntaxTree) HasErrors() bool {
	return t.ErrorCount() > 0
}
