// Package api exposes the linter over HTTP and MCP. Both transports
// dispatch to the same kit endpoints backed by a shared Service.
package api

import (
	"log/slog"
	"sync"

	"github.com/hellenika/hoplite/pkg/deck"
	"github.com/hellenika/hoplite/pkg/lint"
)

// Service wraps the deck index and lemmatizer behind a lock so the index
// can be swapped on reload while requests are in flight.
type Service struct {
	mu     sync.RWMutex
	idx    *deck.Index
	lem    lint.Lemmatizer
	logger *slog.Logger
}

func NewService(idx *deck.Index, lem lint.Lemmatizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{idx: idx, lem: lem, logger: logger}
}

// Swap replaces the deck index. Used by the SIGHUP reload path.
func (s *Service) Swap(idx *deck.Index) {
	s.mu.Lock()
	old := s.idx
	s.idx = idx
	s.mu.Unlock()
	s.logger.Info("deck index swapped",
		"notes_before", old.Stats().Notes,
		"notes_after", idx.Stats().Notes)
}

func (s *Service) index() *deck.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// LintBatch resolves candidates against the deck and against each other.
func (s *Service) LintBatch(cands []lint.Candidate) []*lint.Result {
	idx := s.index()
	results := lint.AnalyzeCandidates(cands, idx, s.lem)
	lint.AttachSelfDuplicates(results, lint.SelfDuplicates(cands, s.lem))
	return results
}

// LintCard resolves a single candidate against the deck.
func (s *Service) LintCard(c lint.Candidate) *lint.Result {
	idx := s.index()
	return lint.AnalyzeCandidates([]lint.Candidate{c}, idx, s.lem)[0]
}

// Stats reports the current index sizes.
func (s *Service) Stats() deck.Stats {
	return s.index().Stats()
}
