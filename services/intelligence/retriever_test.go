package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		Chunks: []Chunk{
			{Text: "Blue Lagoon is 7 km from town"},
			{Text: "Tham Chang cave opens at 8am"},
			{Text: "Kayaking trips leave at 9am"},
		},
		Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0}, {0.8, 0.6, 0}},
	}
}

func TestRetrieveReturnsTopKAboveThreshold(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"lagoon": {1, 0, 0}}}
	r := NewRetriever(testKnowledgeBase(), embedder, 2, 0.4, zap.NewNop())

	res, err := r.Retrieve(context.Background(), "  lagoon ")
	require.NoError(t, err)
	assert.Equal(t, "Blue Lagoon is 7 km from town\nKayaking trips leave at 9am", res.Text)
	assert.Len(t, res.Matches, 2)
}

func TestRetrieveGatesOnConfidence(t *testing.T) {
	// Best score is about 0.29.
	embedder := &fakeEmbedder{vectors: map[string][]float32{"weather": {0.3, 0, 1}}}
	r := NewRetriever(testKnowledgeBase(), embedder, 2, 0.4, zap.NewNop())

	res, err := r.Retrieve(context.Background(), "weather")
	assert.ErrorIs(t, err, ErrLowConfidence)
	require.NotNil(t, res)
	assert.Empty(t, res.Text)
	assert.Equal(t, NoSpecificDataContext, r.ContextFor(context.Background(), "weather"))
}

func TestRetrieveWithoutKnowledgeBase(t *testing.T) {
	r := NewRetriever(nil, &fakeEmbedder{}, 2, 0.4, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoKnowledgeBase)
	assert.Equal(t, NoKnowledgeBaseContext, r.ContextFor(context.Background(), "anything"))
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	r := NewRetriever(testKnowledgeBase(), &fakeEmbedder{err: errors.New("down")}, 2, 0.4, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "lagoon")
	var rErr *RetrievalError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "embed", rErr.Op)
	assert.Equal(t, RetrievalErrorContext, r.ContextFor(context.Background(), "lagoon"))
}

func TestRetrieveDimensionMismatch(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	r := NewRetriever(testKnowledgeBase(), embedder, 2, 0.4, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "q")
	var rErr *RetrievalError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "search", rErr.Op)
}
