package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "e2e"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "e2e", "a.cy.js"), []byte("cy.visit('/');"), 0o644))

	src, err := NewLocalSource(dir)
	require.NoError(t, err)
	defer src.Close()

	t.Run("should open relative path", func(t *testing.T) {
		r, err := src.Open(context.Background(), "e2e/a.cy.js")
		require.NoError(t, err)
		defer r.Close()

		content, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "cy.visit('/');", string(content))
	})

	t.Run("should reject paths outside root", func(t *testing.T) {
		_, err := src.Open(context.Background(), "../secret")
		assert.True(t, errors.Is(err, ErrOutsideRoot))
	})

	t.Run("should honor cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := src.Open(ctx, "e2e/a.cy.js")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewLocalSource_RejectsFiles(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.js")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewLocalSource(file)
	assert.True(t, errors.Is(err, ErrNotDirectory))

	_, err = NewLocalSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
