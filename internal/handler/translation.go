package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/domain"
	"github.com/pricofy/football-api/internal/translator"
)

// ErrNoDescription is returned when a match has nothing to translate.
var ErrNoDescription = errors.New("match has no description")

// translateTimeout bounds a shared translation. The flight outlives the
// request that started it so joined callers and the cache write survive
// that caller going away.
const translateTimeout = 60 * time.Second

// Translate returns the description of a match in lang. A stored
// translation is returned as is; otherwise the description is translated
// and written back as a set-if-absent entry.
func (h *Handler) Translate(ctx context.Context, id int, lang string) (domain.TranslationResult, error) {
	m, err := h.store.GetMatch(ctx, id)
	if err != nil {
		return domain.TranslationResult{}, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if m.Description == "" {
		return domain.TranslationResult{}, ErrNoDescription
	}

	if text, ok := m.Translation(lang); ok {
		return domain.TranslationResult{Original: m.Description, Translated: text, Cached: true}, nil
	}

	flight := h.inflight.DoChan(strconv.Itoa(id)+"/"+lang, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), translateTimeout)
		defer cancel()
		return h.translateAndStore(fctx, m.Key(), lang, m.Description)
	})

	select {
	case <-ctx.Done():
		return domain.TranslationResult{}, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return domain.TranslationResult{}, res.Err
		}
		return res.Val.(domain.TranslationResult), nil
	}
}

func (h *Handler) translateAndStore(ctx context.Context, key domain.MatchKey, lang, description string) (domain.TranslationResult, error) {
	id := key.MatchID
	translated, err := h.translator.Translate(ctx, description, h.sourceLang, lang)
	if err != nil {
		return domain.TranslationResult{}, fmt.Errorf("translation failed: %w", err)
	}

	result := domain.TranslationResult{Original: description, Translated: translated}

	err = h.store.PutTranslation(ctx, key, lang, translated)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, domain.ErrTranslationExists):
		// Another writer stored this language first; its text wins.
		m, getErr := h.store.GetMatch(ctx, id)
		if getErr == nil {
			if text, ok := m.Translation(lang); ok {
				return domain.TranslationResult{Original: m.Description, Translated: text, Cached: true}, nil
			}
		}
		h.log.Warn("translation conflict but stored entry unreadable",
			zap.Int("matchId", id),
			zap.String("language", lang),
			zap.Error(getErr),
		)
		return result, nil
	default:
		h.log.Error("failed to store translation",
			zap.Int("matchId", id),
			zap.String("language", lang),
			zap.Error(err),
		)
		return result, nil
	}
}

// GetMatchTranslation handles GET /matches/{matchId}/translation?language=xx.
func (h *Handler) GetMatchTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	lang := r.URL.Query().Get("language")
	if err := h.validate.LanguageCode(lang); err != nil {
		h.invalid(w, "Invalid query parameters", err)
		return
	}

	result, err := h.Translate(r.Context(), id, lang)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, result)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, ErrNoDescription):
		h.notFound(w, "Match not found or missing description")
	case errors.Is(err, translator.ErrUnsupportedLanguage):
		h.badRequest(w, err.Error())
	default:
		h.serverError(w, r, err)
	}
}
