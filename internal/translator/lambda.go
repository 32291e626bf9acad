package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/pricofy/football-api/internal/chunker"
)

// Romance languages served by the <prefix>-romance-en / <prefix>-en-romance
// translator Lambdas. Region variants use an underscore.
var romanceLanguages = map[string]bool{
	"es": true, "es_AR": true, "es_ES": true, "es_MX": true,
	"fr": true, "fr_BE": true, "fr_CA": true,
	"it": true,
	"pt": true, "pt_BR": true, "pt_PT": true,
	"ca": true, // Catalan
	"gl": true, // Galician
	"oc": true, // Occitan
	"ro": true,
	"la": true, // Latin
}

// LambdaAPI is the subset of the Lambda client used by LambdaFleet.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaFleet translates by invoking self-hosted translator Lambdas.
// Pairs that do not involve English pivot through it with two calls.
type LambdaFleet struct {
	client   LambdaAPI
	prefix   string
	maxBytes int
}

// fleetRequest is the request format for translator Lambdas (chunked mode).
type fleetRequest struct {
	Chunks     [][]string `json:"chunks"`
	TargetLang string     `json:"target_lang,omitempty"` // Required for en-romance
}

// fleetResponse is the response format from translator Lambdas (chunked mode).
type fleetResponse struct {
	Translations [][]string `json:"translations"`
	Error        string     `json:"error,omitempty"`
}

type step struct {
	function   string
	targetLang string
}

// NewLambdaFleet creates a translator that calls <prefix>-<pair> functions.
func NewLambdaFleet(client LambdaAPI, prefix string) *LambdaFleet {
	return &LambdaFleet{client: client, prefix: prefix, maxBytes: chunker.DefaultMaxBytes}
}

// Supports reports whether the fleet can translate source to target.
func (f *LambdaFleet) Supports(source, target string) bool {
	return f.route(normalize(source), normalize(target)) != nil
}

// route returns the functions to call in sequence, or nil when the pair
// is not served.
func (f *LambdaFleet) route(source, target string) []step {
	if source == target {
		return nil
	}
	switch {
	case source == "en":
		if s, ok := f.fromEnglish(target); ok {
			return []step{s}
		}
	case target == "en":
		if s, ok := f.toEnglish(source); ok {
			return []step{s}
		}
	default:
		in, okIn := f.toEnglish(source)
		out, okOut := f.fromEnglish(target)
		if okIn && okOut {
			return []step{in, out}
		}
	}
	return nil
}

func (f *LambdaFleet) toEnglish(source string) (step, bool) {
	switch {
	case romanceLanguages[source]:
		return step{function: f.prefix + "-romance-en"}, true
	case source == "de":
		return step{function: f.prefix + "-de-en"}, true
	}
	return step{}, false
}

func (f *LambdaFleet) fromEnglish(target string) (step, bool) {
	switch {
	case romanceLanguages[target]:
		return step{function: f.prefix + "-en-romance", targetLang: target}, true
	case target == "de":
		return step{function: f.prefix + "-en-de"}, true
	}
	return step{}, false
}

// Translate implements Translator.
func (f *LambdaFleet) Translate(ctx context.Context, text, source, target string) (string, error) {
	source, target = normalize(source), normalize(target)
	route := f.route(source, target)
	if route == nil {
		return "", fmt.Errorf("%w: %s→%s", ErrUnsupportedLanguage, source, target)
	}

	pieces := chunker.ChunkBySize(text, f.maxBytes)
	if len(pieces) == 0 {
		return "", nil
	}

	current := [][]string{pieces}
	for i, s := range route {
		result, err := f.invoke(ctx, s, current)
		if err != nil {
			return "", fmt.Errorf("step %d (%s) failed: %w", i+1, s.function, err)
		}
		current = result
	}

	var out []string
	for _, chunk := range current {
		out = append(out, chunk...)
	}
	return strings.Join(out, " "), nil
}

func (f *LambdaFleet) invoke(ctx context.Context, s step, chunks [][]string) ([][]string, error) {
	payload, err := json.Marshal(fleetRequest{Chunks: chunks, TargetLang: s.targetLang})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := f.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: &s.function,
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", s.function, err)
	}

	if result.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp fleetResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) != len(chunks) {
		return nil, fmt.Errorf("translator returned %d chunks, want %d", len(resp.Translations), len(chunks))
	}
	return resp.Translations, nil
}

// normalize maps BCP 47 style codes (pt-BR) to the fleet's pt_BR form.
func normalize(lang string) string {
	return strings.ReplaceAll(lang, "-", "_")
}
