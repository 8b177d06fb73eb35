package catalog

import (
	"strconv"
	"strings"
	"unicode"
)

// KeysToID derives a stable identifier from a raw key combination. The result
// is lowercase, words are joined by underscores, and every rune that is not a
// letter or digit is replaced by its decimal code point, so "<C-a>" becomes
// "60c45a62" and " dd " becomes "dd".
//
// Lowercasing uses full case mapping ("İ" becomes "i" plus a combining dot,
// a word-final "Σ" becomes "ς") and the information separators U+001C to
// U+001F split words, so identifiers already written to a cache file stay
// valid.
func KeysToID(keys string) string {
	words := strings.FieldsFunc(lower(keys), isSeparator)
	out := make([]string, 0, len(words))
	for _, word := range words {
		var b strings.Builder
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				b.WriteRune(r)
				continue
			}
			b.WriteString(strconv.Itoa(int(r)))
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "_")
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

const (
	capitalIWithDot = '\u0130'
	capitalSigma    = '\u03a3'
	finalSigma      = '\u03c2'
)

// lower is strings.ToLower plus the unconditional and final-sigma rules of
// Unicode SpecialCasing.
func lower(s string) string {
	if !strings.ContainsRune(s, capitalIWithDot) && !strings.ContainsRune(s, capitalSigma) {
		return strings.ToLower(s)
	}
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == capitalIWithDot:
			b.WriteString("i\u0307")
		case r == capitalSigma && isFinalSigma(runes, i):
			b.WriteRune(finalSigma)
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isFinalSigma reports whether the sigma at i follows a cased letter and is
// not followed by one, skipping case-ignorable runes in both directions.
func isFinalSigma(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		before = isCased(runes[j])
		break
	}
	if !before {
		return false
	}
	for j := i + 1; j < len(runes); j++ {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		return !isCased(runes[j])
	}
	return true
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) ||
		unicode.In(r, unicode.Other_Lowercase, unicode.Other_Uppercase)
}

func isCaseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '\u00b7', '\u0387', '\u055f', '\u05f4',
		'\u2018', '\u2019', '\u2024', '\u2027', '\ufe13', '\ufe52', '\ufe55', '\uff07', '\uff0e', '\uff1a':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}
