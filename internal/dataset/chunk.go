package dataset

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the maximum rune length of a conversation chunk.
const DefaultChunkSize = 500

// minChunkRunes drops fragments too short to make a useful training
// example.
const minChunkRunes = 20

// sentenceEnd reports whether r terminates a sentence. Includes the
// Arabic question mark and the Urdu full stop alongside the Latin
// terminators, since the corpus mixes scripts.
func sentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '؟', '۔':
		return true
	}
	return false
}

// SplitSentences splits text on sentence terminators, dropping empty
// pieces.
func SplitSentences(text string) []string {
	return strings.FieldsFunc(text, sentenceEnd)
}

// ChunkSentences splits text on sentence boundaries and packs whole
// sentences into chunks of at most maxRunes. Sentences longer than
// maxRunes become their own chunk rather than being cut mid-sentence.
// Chunks of minChunkRunes or fewer are dropped.
func ChunkSentences(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = DefaultChunkSize
	}

	var chunks []string
	var current []string
	length := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ". ")+".")
			current = nil
			length = 0
		}
	}

	for _, sentence := range SplitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		n := utf8.RuneCountInString(sentence)
		if length+n <= maxRunes {
			current = append(current, sentence)
			length += n
		} else {
			flush()
			current = []string{sentence}
			length = n
		}
	}
	flush()

	kept := chunks[:0]
	for _, chunk := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(chunk)) > minChunkRunes {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// ChunkWords packs whitespace-separated words into chunks of at most
// maxRunes, counting one rune per joining space. Used for text without
// reliable sentence punctuation.
func ChunkWords(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = DefaultChunkSize
	}

	var chunks []string
	var current []string
	length := 0

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if length+n+1 <= maxRunes {
			current = append(current, word)
			length += n + 1
		} else {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
			}
			current = []string{word}
			length = n
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
