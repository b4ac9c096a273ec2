package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeIsCaseInsensitive(t *testing.T) {
	s := NewScope[int]("global")
	s.Define("Size", 10)

	v, ok := s.Lookup("SIZE")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	s.Define("size", 20)
	assert.Equal(t, 1, s.Len())
	v, _ = s.Lookup("size")
	assert.Equal(t, 20, v)
}

func TestScopeDeleteAndNames(t *testing.T) {
	s := NewScope[string]("procedures")
	s.Define("b", "second")
	s.Define("A", "first")
	s.Define("c", "third")

	assert.Equal(t, []string{"a", "b", "c"}, s.Names())

	s.Delete("B")
	_, ok := s.Lookup("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, s.Names())
}
