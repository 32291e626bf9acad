// Package handler provides the HTTP handlers for the football match API.
package handler

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pricofy/football-api/internal/store"
	"github.com/pricofy/football-api/internal/translator"
	"github.com/pricofy/football-api/internal/validate"
)

// DefaultSourceLanguage is the language match descriptions are written in.
const DefaultSourceLanguage = "en"

// Handler serves the match endpoints. Dependencies are injected so tests
// can substitute the store and translator.
type Handler struct {
	store      store.Store
	translator translator.Translator
	validate   *validate.Validator
	log        *zap.Logger
	sourceLang string
	now        func() time.Time

	// Coalesces concurrent translations of the same match and language.
	inflight singleflight.Group
}

// Option configures a Handler.
type Option func(*Handler)

// WithSourceLanguage sets the language descriptions are translated from.
func WithSourceLanguage(lang string) Option {
	return func(h *Handler) {
		if lang != "" {
			h.sourceLang = lang
		}
	}
}

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New creates a Handler.
func New(s store.Store, t translator.Translator, v *validate.Validator, log *zap.Logger, opts ...Option) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if v == nil {
		v = validate.New()
	}
	h := &Handler{
		store:      s,
		translator: t,
		validate:   v,
		log:        log,
		sourceLang: DefaultSourceLanguage,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
