// Package extraction pulls imports and comment-free content out of
// JavaScript and TypeScript sources.
package extraction

import (
	"bytes"
	"context"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

var commentStripRegex = regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`)

var jsImportPattern = regexp.MustCompile(`(?:import\s+(?:[\s\S]*?\s+from\s+)?|require\(\s*)['"]([^'"]+)['"]`)

// ExtractJSImports returns the module specifiers of import declarations and
// require calls, in source order.
func ExtractJSImports(_ context.Context, content []byte) []string {
	matches := jsImportPattern.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	imports := make([]string, 0, len(matches))
	for _, match := range matches {
		if len(match) > 1 {
			imports = append(imports, string(match[1]))
		}
	}
	return imports
}

// WithoutComments returns content with its comments blanked out. Comments
// are located with tree-sitter so that comment-like text inside string
// literals (e.g. "**/*.ts") is kept; a regex strip is used when the source
// cannot be parsed. Content without comment markers is returned as is.
func WithoutComments(ctx context.Context, lang domain.Language, content []byte) []byte {
	if !bytes.Contains(content, []byte("//")) && !bytes.Contains(content, []byte("/*")) {
		return content
	}

	tree, err := tspool.Parse(ctx, lang, content)
	if err != nil {
		return commentStripRegex.ReplaceAll(content, nil)
	}
	defer tree.Close()

	stripped, err := StripComments(tree.RootNode(), content, lang)
	if err != nil {
		return commentStripRegex.ReplaceAll(content, nil)
	}
	return stripped
}

const commentQuery = `(comment) @comment`

// StripComments returns a copy of content with every comment under root
// replaced by spaces. Newlines are kept so offsets and line numbers still
// point at the same code.
func StripComments(root *sitter.Node, content []byte, lang domain.Language) ([]byte, error) {
	comments, err := tspool.QueryWithCache(root, content, lang, commentQuery)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return content, nil
	}

	stripped := bytes.Clone(content)
	for _, c := range comments {
		for i := c.Node.StartByte(); i < c.Node.EndByte() && int(i) < len(stripped); i++ {
			if stripped[i] != '\n' {
				stripped[i] = ' '
			}
		}
	}
	return stripped, nil
}
