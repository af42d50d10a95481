package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	ai "laohotel/services/intelligence"

	"go.uber.org/zap"
)

var ErrSimilarityUnavailable = errors.New("booking phrase embedding unavailable")

type Options struct {
	BookingKeywords      []string
	ConfirmationKeywords []string
	DenialKeywords       []string
	PriceKeywords        []string
	// BookingPhrase is the canonical "I want to book a room" sentence.
	BookingPhrase       string
	SimilarityThreshold float64
}

// Classifier answers the yes/no questions the booking flow asks about a message.
type Classifier struct {
	opts      Options
	embedder  ai.Embedder
	phraseVec []float32
	logger    *zap.Logger
}

// NewClassifier embeds the booking phrase once. Without an embedder, or if that embedding
// fails, booking intent falls back to keywords alone.
func NewClassifier(ctx context.Context, opts Options, embedder ai.Embedder, logger *zap.Logger) *Classifier {
	c := &Classifier{opts: opts, embedder: embedder, logger: logger}
	c.opts.BookingKeywords = lowerAll(opts.BookingKeywords)
	c.opts.ConfirmationKeywords = lowerAll(opts.ConfirmationKeywords)
	c.opts.DenialKeywords = lowerAll(opts.DenialKeywords)
	c.opts.PriceKeywords = lowerAll(opts.PriceKeywords)

	if embedder != nil && opts.BookingPhrase != "" {
		vec, err := embedder.Embed(ctx, ai.Normalize(opts.BookingPhrase))
		if err != nil {
			logger.Warn("Booking phrase embedding failed, using keywords only", zap.Error(err))
		} else {
			c.phraseVec = vec
		}
	}
	return c
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// matchesKeyword treats ASCII keywords as whole words and Lao keywords as substrings,
// since Lao is written without spaces.
func matchesKeyword(text string, keywords []string) bool {
	tokens := ai.Tokenize(text)
	for _, k := range keywords {
		if !isASCII(k) {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == k {
				return true
			}
		}
	}
	return false
}

// IsBookingIntent is true on a keyword hit, or when the message is close enough to the
// booking phrase. Embedding failures count as no match.
func (c *Classifier) IsBookingIntent(ctx context.Context, text string) bool {
	lower := strings.ToLower(text)
	if containsAny(lower, c.opts.BookingKeywords) {
		return true
	}
	score, err := c.Similarity(ctx, text)
	if err != nil {
		if !errors.Is(err, ErrSimilarityUnavailable) {
			c.logger.Warn("Booking intent similarity failed", zap.Error(err))
		}
		return false
	}
	return score > c.opts.SimilarityThreshold
}

// Similarity is the cosine similarity between text and the booking phrase.
func (c *Classifier) Similarity(ctx context.Context, text string) (float64, error) {
	if c.embedder == nil || c.phraseVec == nil {
		return 0, ErrSimilarityUnavailable
	}
	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("embed message: %w", err)
	}
	if len(vec) != len(c.phraseVec) {
		return 0, fmt.Errorf("embedding dimension %d does not match phrase dimension %d", len(vec), len(c.phraseVec))
	}
	return ai.Cosine(vec, c.phraseVec), nil
}

func (c *Classifier) IsPriceInquiry(text string) bool {
	return containsAny(strings.ToLower(text), c.opts.PriceKeywords)
}

func (c *Classifier) IsDenial(text string) bool {
	return matchesKeyword(strings.ToLower(text), c.opts.DenialKeywords)
}

// leadsWith reports whether the message opens with one of the keywords.
func leadsWith(text string, keywords []string) bool {
	text = strings.TrimSpace(text)
	tokens := ai.Tokenize(text)
	if len(tokens) == 0 {
		return false
	}
	for _, k := range keywords {
		if isASCII(k) {
			if tokens[0] == k {
				return true
			}
		} else if strings.HasPrefix(text, k) {
			return true
		}
	}
	return false
}

// IsConfirmation is true when a confirmation keyword appears, unless the reply opens with
// a denial ("ບໍ່ແມ່ນ", "no, ok"). A negation later in the message ("ok ບໍ່ມີບັນຫາ") does
// not count against it.
func (c *Classifier) IsConfirmation(text string) bool {
	lower := strings.ToLower(text)
	if leadsWith(lower, c.opts.DenialKeywords) {
		return false
	}
	return matchesKeyword(lower, c.opts.ConfirmationKeywords)
}
