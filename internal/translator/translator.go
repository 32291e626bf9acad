// Package translator translates match descriptions through a managed service.
package translator

import (
	"context"
	"errors"
)

// ErrUnsupportedLanguage is returned when the backend cannot translate
// between the requested languages.
var ErrUnsupportedLanguage = errors.New("unsupported language pair")

// Translator translates text from source to target language.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

var (
	_ Translator = (*Amazon)(nil)
	_ Translator = (*LambdaFleet)(nil)
)
