// Package parser turns source text into an arena-backed syntax tree using tree-sitter.
//
// A Registry maps each supported domain.Language to its grammar, keyword list,
// comment node types and file extensions. It is built once at startup and never
// mutated; callers pass it explicitly to the Parser and to the analyzer.
//
// Parsing is error tolerant: malformed syntax yields ERROR or MISSING nodes in the
// tree, never a failure. Only two things fail a parse: a language that is not in
// the registry, and input that is not valid UTF-8.
//
// Basic usage:
//
//	reg := parser.NewDefaultRegistry()
//	p := parser.New(reg)
//	tree, err := p.Parse(ctx, []byte("int main(){return 0;}"), domain.LanguageC)
//	if err != nil {
//	    // unsupported language or decode error
//	}
//	for _, leaf := range tree.Leaves() {
//	    fmt.Println(tree.Nodes[leaf].Type)
//	}
package parser
