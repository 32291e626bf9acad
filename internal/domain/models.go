// Package domain contains the core domain types for the football match API.
package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a match does not exist.
	ErrNotFound = errors.New("match not found")

	// ErrTranslationExists is returned when a translation for the language
	// was already stored by another writer.
	ErrTranslationExists = errors.New("translation already exists")

	// ErrEmptyUpdate is returned when an update carries no fields.
	ErrEmptyUpdate = errors.New("update has no fields")
)

// Match is a football match record as stored in the table.
type Match struct {
	MatchID      int               `json:"matchId" dynamodbav:"matchId"`
	TeamName     string            `json:"teamName,omitempty" dynamodbav:"teamName,omitempty"`
	TeamNameA    string            `json:"teamNameA" dynamodbav:"teamNameA"`
	TeamNameB    string            `json:"teamNameB" dynamodbav:"teamNameB"`
	TeamNames    []string          `json:"teamNames" dynamodbav:"teamNames"`
	Description  string            `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Translations map[string]string `json:"translations,omitempty" dynamodbav:"translations,omitempty"`
	CreatedAt    time.Time         `json:"createdAt" dynamodbav:"createdAt"`
}

// Translation returns the stored translation for lang, if any.
func (m *Match) Translation(lang string) (string, bool) {
	text, ok := m.Translations[lang]
	return text, ok && text != ""
}

// Key returns the item key of m. Records written without a teamName are
// addressed by teamNameA, the value create would have given them.
func (m *Match) Key() MatchKey {
	teamName := m.TeamName
	if teamName == "" {
		teamName = m.TeamNameA
	}
	return MatchKey{MatchID: m.MatchID, TeamName: teamName}
}

// NewMatch is the payload accepted by the create operation.
type NewMatch struct {
	MatchID     int    `json:"matchId" validate:"required,gt=0"`
	TeamName    string `json:"teamName,omitempty" validate:"max=100"`
	TeamNameA   string `json:"teamNameA" validate:"required,max=100"`
	TeamNameB   string `json:"teamNameB" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=5000"`
}

// Match builds the record to store. Translations start absent and
// TeamName defaults to TeamNameA.
func (n NewMatch) Match(now time.Time) Match {
	teamName := n.TeamName
	if teamName == "" {
		teamName = n.TeamNameA
	}
	return Match{
		MatchID:     n.MatchID,
		TeamName:    teamName,
		TeamNameA:   n.TeamNameA,
		TeamNameB:   n.TeamNameB,
		TeamNames:   []string{n.TeamNameA, n.TeamNameB},
		Description: n.Description,
		CreatedAt:   now.UTC(),
	}
}

// MatchKey identifies the item touched by an update.
type MatchKey struct {
	MatchID  int
	TeamName string
}

// MatchUpdate is a partial update. Nil fields are left untouched.
type MatchUpdate struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	TeamNameA   *string `json:"teamNameA,omitempty" validate:"omitempty,min=1,max=100"`
	TeamNameB   *string `json:"teamNameB,omitempty" validate:"omitempty,min=1,max=100"`
}

// IsEmpty reports whether the update carries no fields.
func (u MatchUpdate) IsEmpty() bool {
	return u.Description == nil && u.TeamNameA == nil && u.TeamNameB == nil
}

// TeamNames returns the recomputed teamNames list, or nil when neither
// team name is part of the update. Only the supplied names are kept.
func (u MatchUpdate) TeamNames() []string {
	if u.TeamNameA == nil && u.TeamNameB == nil {
		return nil
	}
	names := make([]string, 0, 2)
	if u.TeamNameA != nil {
		names = append(names, *u.TeamNameA)
	}
	if u.TeamNameB != nil {
		names = append(names, *u.TeamNameB)
	}
	return names
}

// Apply mutates m with the fields present in the update.
func (u MatchUpdate) Apply(m *Match) {
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.TeamNameA != nil {
		m.TeamNameA = *u.TeamNameA
	}
	if u.TeamNameB != nil {
		m.TeamNameB = *u.TeamNameB
	}
	if names := u.TeamNames(); names != nil {
		m.TeamNames = names
	}
}

// TeamFilter selects matches whose teamNames contain the given substrings.
// Empty fields do not filter.
type TeamFilter struct {
	TeamNameA string `json:"teamNameA,omitempty" validate:"max=100"`
	TeamNameB string `json:"teamNameB,omitempty" validate:"max=100"`
}

// IsEmpty reports whether the filter selects every match.
func (f TeamFilter) IsEmpty() bool {
	return f.TeamNameA == "" && f.TeamNameB == ""
}

// Matches reports whether every supplied name is a substring of at least
// one entry of m.TeamNames.
func (f TeamFilter) Matches(m Match) bool {
	for _, want := range []string{f.TeamNameA, f.TeamNameB} {
		if want == "" {
			continue
		}
		if !containsSubstring(m.TeamNames, want) {
			return false
		}
	}
	return true
}

func containsSubstring(names []string, sub string) bool {
	for _, name := range names {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// TranslationResult is returned by the translation operation.
type TranslationResult struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Cached     bool   `json:"cached"`
}
