package server

import (
	"sync"

	"github.com/google/uuid"

	"dirserve/internal/tree"
)

// state is the Disabled/Enabled lifecycle. A non-nil root means enabled;
// each activation gets a fresh generation id.
type state struct {
	mu         sync.Mutex
	root       tree.Root
	generation uuid.UUID
}

// activate enables serving root. It is ignored while already enabled.
func (s *state) activate(root tree.Root) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root != nil {
		return s.generation, false
	}
	s.root = root
	s.generation = uuid.New()
	return s.generation, true
}

// current returns the root being served, if any.
func (s *state) current() (tree.Root, uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.root, s.generation, s.root != nil
}

// disable stops serving if generation is still the active one. It reports
// whether a transition happened.
func (s *state) disable(generation uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil || s.generation != generation {
		return false
	}
	s.root = nil
	return true
}
