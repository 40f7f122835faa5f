package commands

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// lineDiff renders a line-oriented diff of before and after in a unified
// style. Unchanged runs longer than the context are collapsed. Returns ""
// when the texts are equal.
func lineDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)

	for i, d := range diffs {
		text := splitLines(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&b, "+", text)
		case diffmatchpatch.DiffDelete:
			writeLines(&b, "-", text)
		case diffmatchpatch.DiffEqual:
			writeEqual(&b, text, i > 0, i < len(diffs)-1)
		}
	}

	return b.String()
}

// writeEqual keeps the context after a previous change and before a next one.
func writeEqual(b *strings.Builder, lines []string, afterChange, beforeChange bool) {
	head, tail := 0, 0
	if afterChange {
		head = diffContext
	}
	if beforeChange {
		tail = diffContext
	}

	if head+tail >= len(lines) {
		writeLines(b, " ", lines)
		return
	}

	writeLines(b, " ", lines[:head])
	fmt.Fprintf(b, "@@ %d unchanged lines @@\n", len(lines)-head-tail)
	writeLines(b, " ", lines[len(lines)-tail:])
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
