// Package chunker splits long text into pieces that fit one translation request.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxBytes is the default maximum size of one chunk.
// Amazon Translate rejects TranslateText input above 10,000 UTF-8 bytes.
const DefaultMaxBytes = 10000

// Sentences splits text after sentence terminators (. ! ? and newlines)
// that are followed by whitespace or the end of the text.
// Terminators stay with their sentence; surrounding whitespace is dropped.
func Sentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' && r != '\n' {
			continue
		}
		end := i + utf8.RuneLen(r)
		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if r != '\n' && !isSpace(next) {
				continue
			}
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ChunkBySize groups the sentences of text into chunks of at most maxBytes.
// Sentences are kept whole unless a single sentence exceeds maxBytes, in
// which case it is split at word boundaries, and words at rune boundaries.
// Joining the chunks with a space reproduces the text up to whitespace.
func ChunkBySize(text string, maxBytes int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	// Short text is sent as-is so its line breaks survive.
	if len(text) <= maxBytes {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, sentence := range Sentences(text) {
		// An oversized sentence is split on its own
		if len(sentence) > maxBytes {
			flush()
			chunks = append(chunks, splitOversized(sentence, maxBytes)...)
			continue
		}

		// If adding this sentence would exceed the limit, start a new chunk
		if current.Len() > 0 && current.Len()+1+len(sentence) > maxBytes {
			flush()
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}

	flush()
	return chunks
}

func splitOversized(sentence string, maxBytes int) []string {
	var pieces []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			pieces = append(pieces, current.String())
			current.Reset()
		}
	}

	for _, word := range strings.Fields(sentence) {
		for len(word) > maxBytes {
			flush()
			cut := runeBoundary(word, maxBytes)
			pieces = append(pieces, word[:cut])
			word = word[cut:]
		}

		if current.Len() > 0 && current.Len()+1+len(word) > maxBytes {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	flush()
	return pieces
}

// runeBoundary returns the largest cut <= max that does not split a rune.
func runeBoundary(s string, max int) int {
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(s)
		cut = size
	}
	return cut
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
