package engine

import (
	"sort"
	"sync"
)

// CommandTracker records the custom commands declared through
// Cypress.Commands.add so later `cy.<name>()` calls can be rewritten.
type CommandTracker interface {
	Track(name string)
	Exists(name string) bool
}

// CommandSet is the in-memory CommandTracker. It is safe for concurrent use
// so one set can be shared by the conversions of a migration run.
type CommandSet struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewCommandTracker() *CommandSet {
	return &CommandSet{names: make(map[string]struct{})}
}

func (s *CommandSet) Track(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name] = struct{}{}
}

func (s *CommandSet) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

// Names returns the tracked commands in sorted order.
func (s *CommandSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
