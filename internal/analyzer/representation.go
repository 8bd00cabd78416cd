package analyzer

import (
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// Representation holds everything the comparators need about one source unit.
// It is built once by Engine.Analyze and read-only afterwards, so it can be
// compared against many other units concurrently.
type Representation struct {
	Name     string
	Language domain.Language

	Text     string
	Stripped string
	runes    []string

	Tokens           TokenSequence
	Normalized       string
	NormalizedTokens TokenSequence

	Identifiers  IdentifierSet
	Graph        *StructuralGraph
	GraphMetrics GraphMetrics

	ErrorNodes int
}

// Stats summarizes the unit for reports
func (r *Representation) Stats() domain.UnitStats {
	return domain.UnitStats{
		Name:        r.Name,
		Bytes:       len(r.Text),
		Lines:       countLines(r.Text),
		Tokens:      r.Tokens.Len(),
		Nodes:       r.GraphMetrics.Nodes,
		Edges:       r.GraphMetrics.Edges,
		ErrorNodes:  r.ErrorNodes,
		Identifiers: len(r.Identifiers),
	}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}
	return lines
}
