package goal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultWhenAbsent(t *testing.T) {
	s := Open(t.TempDir(), 0)
	assert.Equal(t, DefaultML, s.Get())

	_, ok := s.Lookup()
	assert.False(t, ok)
}

func TestCustomFallback(t *testing.T) {
	s := Open(t.TempDir(), 2500)
	assert.Equal(t, 2500, s.Get())
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Open(dir, 0).Set(3000))

	s := Open(dir, 0)
	v, ok := s.Lookup()
	require.True(t, ok)
	assert.Equal(t, 3000, v)
	assert.Equal(t, 3000, s.Get())
}

func TestSetRejectsNonPositive(t *testing.T) {
	s := Open(t.TempDir(), 0)
	require.Error(t, s.Set(0))
	require.Error(t, s.Set(-5))
	assert.Equal(t, DefaultML, s.Get())
}

func TestUnparseableFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, key), []byte("abc"), 0o644))

	s := Open(dir, 0)
	assert.Equal(t, DefaultML, s.Get())
	_, ok := s.Lookup()
	assert.False(t, ok)
}

func TestStoredWithWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, key), []byte(" 1800\n"), 0o644))
	assert.Equal(t, 1800, Open(dir, 0).Get())
}
