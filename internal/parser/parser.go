package parser

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/codesim/domain"
)

// Parser provides multi-language parsing backed by tree-sitter.
// A tree-sitter parser is created per call, so one Parser may be shared
// across goroutines.
type Parser struct {
	registry *Registry
}

// New creates a new Parser over the given registry
func New(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Registry returns the registry the parser was built with
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse parses source in the given language into an arena tree.
// Syntax errors are kept in the tree as error nodes.
func (p *Parser) Parse(ctx context.Context, source []byte, lang domain.Language) (*SyntaxTree, error) {
	spec, err := p.registry.Lookup(lang)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(source) {
		return nil, domain.NewDecodeError(string(lang), nil)
	}

	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(spec.Grammar())

	tree, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	return convertTree(tree.RootNode(), source, lang), nil
}

// ParseFile parses source read from a reader
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, lang domain.Language) (*SyntaxTree, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return p.Parse(ctx, source, lang)
}

type pendingNode struct {
	node   *sitter.Node
	parent int
}

// convertTree copies the tree-sitter tree into an arena in preorder using an
// explicit stack.
func convertTree(root *sitter.Node, source []byte, lang domain.Language) *SyntaxTree {
	tree := &SyntaxTree{Source: source, Language: lang}
	if root == nil {
		return tree
	}

	stack := []pendingNode{{node: root, parent: -1}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := item.node
		start, end := n.StartPoint(), n.EndPoint()
		idx := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, Node{
			Type:      n.Type(),
			Parent:    item.parent,
			StartByte: n.StartByte(),
			EndByte:   n.EndByte(),
			Start:     Point{Row: start.Row, Column: start.Column},
			End:       Point{Row: end.Row, Column: end.Column},
			IsNamed:   n.IsNamed(),
			IsError:   n.IsError(),
			IsMissing: n.IsMissing(),
		})
		if item.parent >= 0 {
			tree.Nodes[item.parent].Children = append(tree.Nodes[item.parent].Children, idx)
		}

		count := int(n.ChildCount())
		for i := count - 1; i >= 0; i-- {
			child := n.Child(i)
			if child == nil {
				continue
			}
			stack = append(stack, pendingNode{node: child, parent: idx})
		}
	}
	return tree
}
