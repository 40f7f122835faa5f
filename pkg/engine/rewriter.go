package engine

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

type nodeKey struct {
	start uint32
	end   uint32
	typ   string
}

func keyOf(node *sitter.Node) nodeKey {
	return nodeKey{start: node.StartByte(), end: node.EndByte(), typ: node.Type()}
}

// rewriter renders a syntax tree with some nodes substituted. The tree is
// never mutated: Text splices replacement strings into the original source
// so every untouched byte range is emitted verbatim.
type rewriter struct {
	source       []byte
	indent       string
	replacements map[nodeKey]string
}

func newRewriter(source []byte, indent string) *rewriter {
	return &rewriter{
		source:       source,
		indent:       indent,
		replacements: make(map[nodeKey]string),
	}
}

// Replace substitutes node with the printed fragment. The fragment is
// printed relative to the indentation of the line node starts on.
func (r *rewriter) Replace(node *sitter.Node, fragment jsgen.Node) {
	r.replacements[keyOf(node)] = jsgen.Print(fragment,
		jsgen.WithBaseIndent(r.lineIndent(node.StartByte())),
		jsgen.WithIndentUnit(r.indent),
	)
}

// Raw returns the current text of node as a raw fragment.
func (r *rewriter) Raw(node *sitter.Node) jsgen.Raw {
	return jsgen.Raw(r.Text(node))
}

// Raws returns the current text of each node.
func (r *rewriter) Raws(nodes []*sitter.Node) []jsgen.Expr {
	exprs := make([]jsgen.Expr, 0, len(nodes))
	for _, n := range nodes {
		exprs = append(exprs, r.Raw(n))
	}
	return exprs
}

// Text returns node's text with all substitutions inside it applied.
func (r *rewriter) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	r.write(&sb, node, 0)
	return sb.String()
}

// Render returns the whole source with all substitutions applied.
func (r *rewriter) Render(root *sitter.Node) string {
	if len(r.replacements) == 0 {
		return string(r.source)
	}

	var sb strings.Builder
	sb.Grow(len(r.source))
	sb.Write(r.source[:root.StartByte()])
	r.write(&sb, root, 0)
	sb.Write(r.source[root.EndByte():])
	return sb.String()
}

func (r *rewriter) write(sb *strings.Builder, node *sitter.Node, depth int) {
	if text, ok := r.replacements[keyOf(node)]; ok {
		sb.WriteString(text)
		return
	}

	count := int(node.ChildCount())
	if count == 0 || depth > tspool.MaxTreeDepth || !r.dirty(node) {
		sb.Write(r.source[node.StartByte():node.EndByte()])
		return
	}

	cursor := node.StartByte()
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if child.StartByte() < cursor {
			continue
		}
		sb.Write(r.source[cursor:child.StartByte()])
		r.write(sb, child, depth+1)
		cursor = child.EndByte()
	}
	if cursor < node.EndByte() {
		sb.Write(r.source[cursor:node.EndByte()])
	}
}

// dirty reports whether any substitution lies within node.
func (r *rewriter) dirty(node *sitter.Node) bool {
	start, end := node.StartByte(), node.EndByte()
	for k := range r.replacements {
		if k.start >= start && k.end <= end {
			return true
		}
	}
	return false
}

// lineIndent returns the leading whitespace of the line containing offset.
func (r *rewriter) lineIndent(offset uint32) string {
	start := int(offset)
	for start > 0 && r.source[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(r.source) && (r.source[end] == ' ' || r.source[end] == '\t') {
		end++
	}
	return string(r.source[start:end])
}
