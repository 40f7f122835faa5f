package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "should return nothing for equal texts",
			before: "cy.visit('/');\n",
			after:  "cy.visit('/');\n",
			want:   "",
		},
		{
			name:   "should mark replaced lines",
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want:   "--- a/f.js\n+++ b/f.js\n a\n-b\n+B\n c\n",
		},
		{
			name:   "should collapse long unchanged runs",
			before: "1\n2\n3\n4\n5\n6\n7\n8\n9\nx\n",
			after:  "1\n2\n3\n4\n5\n6\n7\n8\n9\ny\n",
			want:   "--- a/f.js\n+++ b/f.js\n@@ 6 unchanged lines @@\n 7\n 8\n 9\n-x\n+y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, lineDiff("f.js", tt.before, tt.after))
		})
	}
}
