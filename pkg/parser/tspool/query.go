package tspool

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
)

// QueryResult is one match of a tree-sitter query.
type QueryResult struct {
	// Node is the first captured node of the match.
	Node *sitter.Node
	// Captures maps capture names to nodes.
	Captures map[string]*sitter.Node
}

type compiledQuery struct {
	query *sitter.Query
	err   error
}

// Compiled queries are immutable and shared by every conversion; a failed
// compilation is cached too so a bad pattern is reported without recompiling.
var (
	queriesMu sync.RWMutex
	queries   = make(map[domain.Language]map[string]compiledQuery)
)

func compile(lang domain.Language, pattern string) (*sitter.Query, error) {
	queriesMu.RLock()
	c, ok := queries[lang][pattern]
	queriesMu.RUnlock()
	if ok {
		return c.query, c.err
	}

	queriesMu.Lock()
	defer queriesMu.Unlock()

	if c, ok := queries[lang][pattern]; ok {
		return c.query, c.err
	}

	q, err := sitter.NewQuery([]byte(pattern), GetLanguage(lang))
	if queries[lang] == nil {
		queries[lang] = make(map[string]compiledQuery)
	}
	queries[lang][pattern] = compiledQuery{query: q, err: err}
	return q, err
}

// QueryWithCache runs pattern against root, compiling it once per language.
func QueryWithCache(root *sitter.Node, source []byte, lang domain.Language, pattern string) ([]QueryResult, error) {
	query, err := compile(lang, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var results []QueryResult
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			return results, nil
		}
		match = cursor.FilterPredicates(match, source)
		if len(match.Captures) == 0 {
			continue
		}

		result := QueryResult{Captures: make(map[string]*sitter.Node, len(match.Captures))}
		for _, capture := range match.Captures {
			result.Captures[query.CaptureNameForId(capture.Index)] = capture.Node
			if result.Node == nil {
				result.Node = capture.Node
			}
		}
		results = append(results, result)
	}
}
