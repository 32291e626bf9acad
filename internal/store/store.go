// Package store persists match records.
package store

import (
	"context"

	"github.com/pricofy/football-api/internal/domain"
)

// Store is the record store used by the handlers.
type Store interface {
	// PutMatch writes m unconditionally, replacing any record with the same id.
	PutMatch(ctx context.Context, m domain.Match) error

	// GetMatch returns domain.ErrNotFound when no record exists.
	GetMatch(ctx context.Context, matchID int) (*domain.Match, error)

	// ListMatches returns every record.
	ListMatches(ctx context.Context) ([]domain.Match, error)

	// FindByTeams returns the records selected by f.
	FindByTeams(ctx context.Context, f domain.TeamFilter) ([]domain.Match, error)

	// UpdateMatch applies a partial update to the record identified by key.
	UpdateMatch(ctx context.Context, key domain.MatchKey, u domain.MatchUpdate) error

	// PutTranslation stores text under translations[lang] of the record
	// identified by key unless an entry already exists, in which case it
	// returns domain.ErrTranslationExists.
	PutTranslation(ctx context.Context, key domain.MatchKey, lang, text string) error
}

var (
	_ Store = (*Dynamo)(nil)
	_ Store = (*Memory)(nil)
)
