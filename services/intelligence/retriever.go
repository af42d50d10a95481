package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Context strings handed to the generator when retrieval yields nothing usable.
const (
	NoKnowledgeBaseContext = "ບໍ່ມີຂໍ້ມູນສະເພາະໃນຄັງຄວາມຮູ້ກ່ຽວກັບວັງວຽງ ແລະ ບໍລິການໂຮງແຮມ."
	NoSpecificDataContext  = "ບໍ່ມີຂໍ້ມູນສະເພາະກ່ຽວກັບເລື່ອງນີ້ໃນວັງວຽງ, ແຕ່ຂ້ອຍສາມາດໃຫ້ຄຳແນະນຳທົ່ວໄປໄດ້."
	RetrievalErrorContext  = "ເກີດຂໍ້ຜິດພາດໃນການຄົ້ນຫາຂໍ້ມູນ."
)

var (
	ErrNoKnowledgeBase = errors.New("knowledge base not loaded")
	ErrLowConfidence   = errors.New("no passage above the confidence threshold")
)

// RetrievalError is a failure while embedding the query or searching the index.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("retrieval %s: %v", e.Op, e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// Retrieval is the outcome of a search. Matches is set even when the result is rejected
// for low confidence.
type Retrieval struct {
	Matches []Match
	Text    string
}

type Retriever struct {
	kb        *KnowledgeBase
	embedder  Embedder
	topK      int
	threshold float64
	logger    *zap.Logger
}

func NewRetriever(kb *KnowledgeBase, embedder Embedder, topK int, threshold float64, logger *zap.Logger) *Retriever {
	return &Retriever{kb: kb, embedder: embedder, topK: topK, threshold: threshold, logger: logger}
}

// Retrieve returns the top passages for query joined by newlines, provided the best one
// scores above the threshold.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Retrieval, error) {
	if r.kb.Len() == 0 || r.embedder == nil {
		return nil, ErrNoKnowledgeBase
	}
	vec, err := r.embedder.Embed(ctx, Normalize(query))
	if err != nil {
		return nil, &RetrievalError{Op: "embed", Err: err}
	}
	matches, err := TopK(vec, r.kb.Embeddings, r.topK)
	if err != nil {
		return nil, &RetrievalError{Op: "search", Err: err}
	}
	result := &Retrieval{Matches: matches}
	if len(matches) == 0 || matches[0].Score <= r.threshold {
		return result, ErrLowConfidence
	}

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, r.kb.Chunks[m.Index].Text)
	}
	result.Text = strings.Join(texts, "\n")
	return result, nil
}

// ContextFor is Retrieve with every failure collapsed into a Lao context sentence.
func (r *Retriever) ContextFor(ctx context.Context, query string) string {
	res, err := r.Retrieve(ctx, query)
	switch {
	case err == nil:
		return res.Text
	case errors.Is(err, ErrNoKnowledgeBase):
		return NoKnowledgeBaseContext
	case errors.Is(err, ErrLowConfidence):
		best := 0.0
		if len(res.Matches) > 0 {
			best = res.Matches[0].Score
		}
		r.logger.Debug("Retrieval below confidence threshold", zap.Float64("best", best))
		return NoSpecificDataContext
	default:
		r.logger.Error("Retrieval failed", zap.Error(err))
		return RetrievalErrorContext
	}
}
