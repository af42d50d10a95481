package ai

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	thaiFirst    = 0x0E00
	thaiLast     = 0x0E7F
	thaiToLao    = 0x80
	laoDigitZero = 0x0ED0
)

// Normalize composes the text to NFC, folds Thai look-alikes and Lao digits into the
// forms the rest of the pipeline expects, and collapses whitespace.
func Normalize(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= thaiFirst && r <= thaiLast && unicode.Is(unicode.Lao, r+thaiToLao) {
			r += thaiToLao
		}
		if r >= laoDigitZero && r <= laoDigitZero+9 {
			r = '0' + (r - laoDigitZero)
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type script int

const (
	scriptNone script = iota
	scriptDigit
	scriptLao
	scriptOther
)

func scriptOf(r rune) script {
	switch {
	case unicode.IsDigit(r):
		return scriptDigit
	case unicode.Is(unicode.Lao, r):
		return scriptLao
	case unicode.IsLetter(r) || unicode.IsMark(r):
		return scriptOther
	default:
		return scriptNone
	}
}

// Tokenize splits on whitespace, punctuation and script changes, so "ຫ້ອງ101" yields
// ["ຫ້ອງ", "101"]. Lao has no word spacing; a Lao run stays one token.
func Tokenize(text string) []string {
	var tokens []string
	var cur []rune
	prev := scriptNone
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range text {
		s := scriptOf(r)
		// Combining marks attach to the run they follow.
		if unicode.IsMark(r) && prev != scriptNone {
			s = prev
		}
		if s != prev {
			flush()
		}
		if s != scriptNone {
			cur = append(cur, r)
		}
		prev = s
	}
	flush()
	return tokens
}
