package detection

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

const residualQuery = `((member_expression object: (identifier) @object) @member
  (#match? @object "^(cy|Cypress)$"))`

// FindResiduals reports every `cy.*` / `Cypress.*` member access under root,
// one entry per line, keeping the first reference on each line.
func FindResiduals(root *sitter.Node, source []byte, lang domain.Language) ([]domain.Residual, error) {
	results, err := tspool.QueryWithCache(root, source, lang, residualQuery)
	if err != nil {
		return nil, fmt.Errorf("residual query: %w", err)
	}

	var residuals []domain.Residual
	seen := make(map[int]bool)
	for _, r := range results {
		member := r.Captures["member"]
		line := parser.Line(member)
		if seen[line] {
			continue
		}
		seen[line] = true

		residuals = append(residuals, domain.Residual{
			Line: line,
			Text: strings.TrimSpace(lineAt(source, member.StartByte())),
		})
	}

	sort.Slice(residuals, func(i, j int) bool {
		return residuals[i].Line < residuals[j].Line
	})

	return residuals, nil
}

func lineAt(source []byte, offset uint32) string {
	start := int(offset)
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := int(offset)
	for end < len(source) && source[end] != '\n' {
		end++
	}
	return string(source[start:end])
}
