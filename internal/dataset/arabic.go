package dataset

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// arabicRanges covers the Unicode blocks Arabic text is written in:
// Arabic, Arabic Supplement, Arabic Extended-A, and the two
// presentation-forms blocks produced by legacy shaping tools.
var arabicRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// IsArabicRune reports whether r belongs to an Arabic script block.
func IsArabicRune(r rune) bool {
	return unicode.Is(arabicRanges, r)
}

// ContainsArabic reports whether s contains any Arabic text.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if IsArabicRune(r) {
			return true
		}
	}
	return false
}

// CountArabicWords counts maximal runs of Arabic characters, which
// approximates the number of Arabic words in mixed-language text.
func CountArabicWords(s string) int {
	count := 0
	inRun := false
	for _, r := range s {
		if IsArabicRune(r) {
			if !inRun {
				count++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return count
}

// NormalizeText collapses all whitespace runs to single spaces and trims
// the ends. Scanned books arrive with arbitrary line wrapping that would
// otherwise end up inside training examples.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// firstRunes returns the first n runes of s, or all of s if shorter.
func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
