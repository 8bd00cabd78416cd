package parser

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/ludo-technologies/codesim/domain"
)

// LanguageSpec describes one supported language. It is read-only once built.
type LanguageSpec struct {
	language     domain.Language
	grammar      *sitter.Language
	keywords     map[string]struct{}
	commentTypes map[string]struct{}
	extensions   []string
}

// NewLanguageSpec builds a spec. Extensions are normalized to lower case with a leading dot.
func NewLanguageSpec(lang domain.Language, grammar *sitter.Language, keywords, commentTypes, extensions []string) LanguageSpec {
	spec := LanguageSpec{
		language:     lang,
		grammar:      grammar,
		keywords:     make(map[string]struct{}, len(keywords)),
		commentTypes: make(map[string]struct{}, len(commentTypes)),
	}
	for _, kw := range keywords {
		spec.keywords[kw] = struct{}{}
	}
	for _, ct := range commentTypes {
		spec.commentTypes[ct] = struct{}{}
	}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		spec.extensions = append(spec.extensions, ext)
	}
	return spec
}

// Language returns the language tag
func (s *LanguageSpec) Language() domain.Language { return s.language }

// Grammar returns the tree-sitter grammar
func (s *LanguageSpec) Grammar() *sitter.Language { return s.grammar }

// IsKeyword reports whether word is excluded from identifier sets.
func (s *LanguageSpec) IsKeyword(word string) bool {
	_, ok := s.keywords[word]
	return ok
}

// Keywords returns the keyword list sorted
func (s *LanguageSpec) Keywords() []string {
	out := make([]string, 0, len(s.keywords))
	for kw := range s.keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// IsCommentType reports whether nodes of this type carry no semantics:
// comments of any flavour and explicit whitespace nodes.
func (s *LanguageSpec) IsCommentType(nodeType string) bool {
	if _, ok := s.commentTypes[nodeType]; ok {
		return true
	}
	return nodeType == "comment" || nodeType == "whitespace" || strings.HasSuffix(nodeType, "_comment")
}

// Extensions returns the file extensions mapped to this language
func (s *LanguageSpec) Extensions() []string {
	return append([]string(nil), s.extensions...)
}

// withExtraKeywords returns a copy of s whose keyword set also holds extra.
func (s LanguageSpec) withExtraKeywords(extra []string) LanguageSpec {
	keywords := make(map[string]struct{}, len(s.keywords)+len(extra))
	for kw := range s.keywords {
		keywords[kw] = struct{}{}
	}
	for _, kw := range extra {
		keywords[kw] = struct{}{}
	}
	s.keywords = keywords
	return s
}

// Registry maps languages to their specs. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	specs map[domain.Language]*LanguageSpec
	byExt map[string]domain.Language
	order []domain.Language
}

// NewRegistry builds a registry from specs. Later specs win on duplicate
// extensions.
func NewRegistry(specs ...LanguageSpec) *Registry {
	r := &Registry{
		specs: make(map[domain.Language]*LanguageSpec, len(specs)),
		byExt: make(map[string]domain.Language),
	}
	for i := range specs {
		spec := specs[i]
		if _, exists := r.specs[spec.language]; !exists {
			r.order = append(r.order, spec.language)
		}
		r.specs[spec.language] = &spec
		for _, ext := range spec.extensions {
			r.byExt[ext] = spec.language
		}
	}
	return r
}

// NewDefaultRegistry returns a registry with every built-in grammar.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewLanguageSpec(domain.LanguageC, c.GetLanguage(), cKeywords, nil, []string{".c", ".h"}),
		NewLanguageSpec(domain.LanguageCPP, cpp.GetLanguage(), cppKeywords, nil, []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}),
		NewLanguageSpec(domain.LanguageCSharp, csharp.GetLanguage(), csharpKeywords, nil, []string{".cs"}),
		NewLanguageSpec(domain.LanguageGo, golang.GetLanguage(), goKeywords, nil, []string{".go"}),
		NewLanguageSpec(domain.LanguageJava, java.GetLanguage(), javaKeywords, nil, []string{".java"}),
		NewLanguageSpec(domain.LanguageJavaScript, javascript.GetLanguage(), javascriptKeywords, nil, []string{".js", ".mjs", ".cjs", ".jsx"}),
		NewLanguageSpec(domain.LanguageKotlin, kotlin.GetLanguage(), kotlinKeywords, nil, []string{".kt", ".kts"}),
		NewLanguageSpec(domain.LanguagePHP, php.GetLanguage(), phpKeywords, nil, []string{".php"}),
		NewLanguageSpec(domain.LanguagePython, python.GetLanguage(), pythonKeywords, nil, []string{".py", ".pyi"}),
		NewLanguageSpec(domain.LanguageRuby, ruby.GetLanguage(), rubyKeywords, nil, []string{".rb"}),
		NewLanguageSpec(domain.LanguageRust, rust.GetLanguage(), rustKeywords, nil, []string{".rs"}),
		NewLanguageSpec(domain.LanguageScala, scala.GetLanguage(), scalaKeywords, nil, []string{".scala", ".sc"}),
		NewLanguageSpec(domain.LanguageTypeScript, typescript.GetLanguage(), typescriptKeywords, nil, []string{".ts", ".mts", ".cts"}),
	)
}

// WithExtraKeywords returns a new registry whose languages also exclude the
// given words from identifier sets. The receiver is left untouched.
func (r *Registry) WithExtraKeywords(extra map[domain.Language][]string) *Registry {
	specs := make([]LanguageSpec, 0, len(r.order))
	for _, lang := range r.order {
		spec := *r.specs[lang]
		if words, ok := extra[lang]; ok && len(words) > 0 {
			spec = spec.withExtraKeywords(words)
		}
		specs = append(specs, spec)
	}
	return NewRegistry(specs...)
}

// Lookup returns the spec for lang, or an UNSUPPORTED_LANGUAGE error.
func (r *Registry) Lookup(lang domain.Language) (*LanguageSpec, error) {
	spec, ok := r.specs[lang]
	if !ok {
		return nil, domain.NewUnsupportedLanguageError(string(lang))
	}
	return spec, nil
}

// Supports reports whether lang is registered
func (r *Registry) Supports(lang domain.Language) bool {
	_, ok := r.specs[lang]
	return ok
}

// Languages returns the registered languages in registration order
func (r *Registry) Languages() []domain.Language {
	return append([]domain.Language(nil), r.order...)
}

// DetectLanguage guesses the language of a file from its extension.
func (r *Registry) DetectLanguage(path string) (domain.Language, bool) {
	lang, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Extensions returns every registered extension, sorted
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
