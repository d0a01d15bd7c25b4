package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirserve/internal/tree"
)

func TestState_DisableIgnoresStaleGeneration(t *testing.T) {
	t.Parallel()

	var s state
	old, ok := s.activate(tree.NewMemRoot(tree.NewMemDir()))
	assert.True(t, ok)
	assert.True(t, s.disable(old))

	current, ok := s.activate(tree.NewMemRoot(tree.NewMemDir()))
	assert.True(t, ok)
	assert.NotEqual(t, old, current, "each activation must get a new generation")

	assert.False(t, s.disable(old), "a late permission failure of the old root must not stop the new one")
	_, gen, enabled := s.current()
	assert.True(t, enabled)
	assert.Equal(t, current, gen)
}
