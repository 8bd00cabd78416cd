package analyzer

import (
	"strings"

	"github.com/ludo-technologies/codesim/internal/parser"
)

// NormalizeSource rebuilds the source from leaf texts in tree order, dropping
// comment and whitespace nodes together with their subtrees. Leaf texts are
// joined without separators.
func NormalizeSource(tree *parser.SyntaxTree, spec *parser.LanguageSpec) string {
	var sb strings.Builder
	tree.Walk(func(i int) bool {
		if spec.IsCommentType(tree.Nodes[i].Type) {
			return false
		}
		if tree.IsLeaf(i) {
			sb.WriteString(tree.Text(i))
		}
		return true
	})
	return sb.String()
}
