package service

import (
	"sync"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

// latestStore holds the single "current result" slot. Results are immutable
// values replaced wholesale; a generation counter orders overlapping
// searches so a slow older search cannot overwrite a newer one.
type latestStore struct {
	mu        sync.Mutex
	gen       uint64
	published uint64
	result    models.SearchResult
	hasResult bool
}

func newLatestStore() *latestStore {
	return &latestStore{}
}

// NextGeneration claims the generation for a newly started search.
func (s *latestStore) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Publish installs the result if gen is still the most recently claimed
// generation and newer than the last published one. Returns false when the
// result is stale and was discarded.
func (s *latestStore) Publish(gen uint64, result models.SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || gen <= s.published {
		return false
	}
	s.published = gen
	s.result = result
	s.hasResult = true
	return true
}

// Get returns the latest published result, if any.
func (s *latestStore) Get() (models.SearchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.hasResult
}
