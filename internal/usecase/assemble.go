package usecase

import (
	"fmt"
	"strings"

	"semdex/internal/domain"
)

// promptTemplate carries the assembled context and the original query to
// the generation step, directing it to answer only from the context.
const promptTemplate = `Use the following context to answer the question. Answer only from the context; if the context does not contain the answer, say that the context is insufficient.

Context:
%s

Question: %s

Answer:`

// ContextAssembler turns top-ranked results into the prompt handed to
// generation. Results are grouped by source document in first-seen rank
// order, so the output is deterministic for a given ranking.
type ContextAssembler struct{}

// NewContextAssembler creates a ContextAssembler.
func NewContextAssembler() *ContextAssembler {
	return &ContextAssembler{}
}

// Assemble groups the results under "Document <id>:" headings, joins the
// groups with a blank line, and embeds the block into the instruction
// template together with the query.
func (a *ContextAssembler) Assemble(results []domain.ScoredCandidate, query string) string {
	return fmt.Sprintf(promptTemplate, a.ContextBlock(results), query)
}

// ContextBlock renders just the grouped context without the instruction
// template.
func (a *ContextAssembler) ContextBlock(results []domain.ScoredCandidate) string {
	var order []string
	groups := make(map[string][]string)

	for _, r := range results {
		if _, seen := groups[r.DocumentID]; !seen {
			order = append(order, r.DocumentID)
		}
		groups[r.DocumentID] = append(groups[r.DocumentID], r.Text)
	}

	sections := make([]string, 0, len(order))
	for _, id := range order {
		var b strings.Builder
		fmt.Fprintf(&b, "Document %s:\n", id)
		b.WriteString(strings.Join(groups[id], "\n"))
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}
