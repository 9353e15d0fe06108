package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/toto/pkgs/errors"
)

func TestInputPath(t *testing.T) {
	path, err := inputPath("", nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = inputPath("a.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, "a.toml", path)

	path, err = inputPath("", []string{"b.toml"})
	require.NoError(t, err)
	assert.Equal(t, "b.toml", path)

	_, err = inputPath("a.toml", []string{"b.toml"})
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	t.Run("explicit stdin", func(t *testing.T) {
		name, src, err := readInput("-", strings.NewReader("a = 1"))
		require.NoError(t, err)
		assert.Equal(t, "<stdin>", name)
		assert.Equal(t, "a = 1", string(src))
	})

	t.Run("empty stdin is not nil", func(t *testing.T) {
		_, src, err := readInput("", strings.NewReader(""))
		require.NoError(t, err)
		assert.NotNil(t, src)
		assert.Empty(t, src)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 'y'"), 0o644))

		name, src, err := readInput(path, nil)
		require.NoError(t, err)
		assert.Equal(t, path, name)
		assert.Equal(t, "x = 'y'", string(src))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := readInput(filepath.Join(t.TempDir(), "nope.toml"), nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrInputRead))
	})

	t.Run("stdin failure", func(t *testing.T) {
		_, _, err := readInput("-", iotest.ErrReader(os.ErrClosed))
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrInputRead))
		assert.ErrorIs(t, err, os.ErrClosed)
	})

	t.Run("no input", func(t *testing.T) {
		_, _, err := readInput("", nil)
		assert.Error(t, err)
	})
}
