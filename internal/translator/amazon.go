package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/aws/aws-sdk-go-v2/service/translate/types"

	"github.com/pricofy/football-api/internal/chunker"
)

// TranslateAPI is the subset of the Amazon Translate client used by Amazon.
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Amazon translates with Amazon Translate. Text above the service limit
// is sent chunk by chunk and the results are joined in order.
type Amazon struct {
	client   TranslateAPI
	maxBytes int
}

// NewAmazon creates an Amazon translator.
func NewAmazon(client TranslateAPI) *Amazon {
	return &Amazon{client: client, maxBytes: chunker.DefaultMaxBytes}
}

// Translate implements Translator.
func (a *Amazon) Translate(ctx context.Context, text, source, target string) (string, error) {
	chunks := chunker.ChunkBySize(text, a.maxBytes)
	if len(chunks) == 0 {
		return "", nil
	}

	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := a.client.TranslateText(ctx, &translate.TranslateTextInput{
			Text:               aws.String(chunk),
			SourceLanguageCode: aws.String(source),
			TargetLanguageCode: aws.String(target),
		})
		if err != nil {
			var unsupported *types.UnsupportedLanguagePairException
			if errors.As(err, &unsupported) {
				return "", fmt.Errorf("%w: %s→%s", ErrUnsupportedLanguage, source, target)
			}
			return "", fmt.Errorf("chunk %d/%d failed: %w", i+1, len(chunks), err)
		}
		translated = append(translated, aws.ToString(out.TranslatedText))
	}

	return strings.Join(translated, " "), nil
}
