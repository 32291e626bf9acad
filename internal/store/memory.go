package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pricofy/football-api/internal/domain"
)

// Memory is an in-process Store for local runs and tests.
// Records are keyed by match id only.
type Memory struct {
	mu      sync.RWMutex
	matches map[int]domain.Match
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{matches: make(map[int]domain.Match)}
}

func (s *Memory) PutMatch(_ context.Context, m domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.MatchID] = clone(m)
	return nil
}

func (s *Memory) GetMatch(_ context.Context, matchID int) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(m)
	return &out, nil
}

func (s *Memory) ListMatches(ctx context.Context) ([]domain.Match, error) {
	return s.FindByTeams(ctx, domain.TeamFilter{})
}

func (s *Memory) FindByTeams(_ context.Context, f domain.TeamFilter) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if f.Matches(m) {
			out = append(out, clone(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

// UpdateMatch creates the record when it is missing, like an upsert.
func (s *Memory) UpdateMatch(_ context.Context, key domain.MatchKey, u domain.MatchUpdate) error {
	if u.IsEmpty() {
		return domain.ErrEmptyUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[key.MatchID]
	if !ok {
		m = domain.Match{MatchID: key.MatchID, TeamName: key.TeamName}
	}
	u.Apply(&m)
	s.matches[key.MatchID] = m
	return nil
}

func (s *Memory) PutTranslation(_ context.Context, key domain.MatchKey, lang, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[key.MatchID]
	if !ok {
		m = domain.Match{MatchID: key.MatchID, TeamName: key.TeamName}
	}
	if _, exists := m.Translations[lang]; exists {
		return domain.ErrTranslationExists
	}
	if m.Translations == nil {
		m.Translations = make(map[string]string)
	}
	m.Translations[lang] = text
	s.matches[key.MatchID] = m
	return nil
}

func clone(m domain.Match) domain.Match {
	if m.TeamNames != nil {
		m.TeamNames = append([]string(nil), m.TeamNames...)
	}
	if m.Translations != nil {
		t := make(map[string]string, len(m.Translations))
		for k, v := range m.Translations {
			t[k] = v
		}
		m.Translations = t
	}
	return m
}
