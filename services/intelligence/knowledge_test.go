package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKnowledgeBaseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"chunks": [{"id": "tubing", "text": "Tubing on the Nam Song river"}],
		"embeddings": [[0.1, 0.2]]
	}`), 0o644))

	kb, err := LoadKnowledgeBase(path)
	require.NoError(t, err)
	assert.Equal(t, 1, kb.Len())
	assert.Equal(t, "tubing", kb.Chunks[0].ID)
	assert.Equal(t, []float32{0.1, 0.2}, kb.Embeddings[0])
}

func TestLoadKnowledgeBaseYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunks:\n  - text: ຖ້ຳປູຄຳ\n  - text: ບລູລາກູນ\n"), 0o644))

	kb, err := LoadKnowledgeBase(path)
	require.NoError(t, err)
	assert.Equal(t, 2, kb.Len())
	assert.Empty(t, kb.Embeddings)
}

func TestLoadKnowledgeBaseRejectsExtraEmbeddings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chunks": [], "embeddings": [[1]]}`), 0o644))

	_, err := LoadKnowledgeBase(path)
	assert.Error(t, err)
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
	_, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmbedMissingAndSave(t *testing.T) {
	kb := &KnowledgeBase{
		Chunks:     []Chunk{{Text: "a"}, {Text: "b"}},
		Embeddings: [][]float32{{9}},
	}
	embedder := &fakeEmbedder{vectors: map[string][]float32{"b": {2}}}

	n, err := kb.EmbedMissing(context.Background(), embedder)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, [][]float32{{9}, {2}}, kb.Embeddings)

	path := filepath.Join(t.TempDir(), "out.yml")
	require.NoError(t, kb.Save(path))
	loaded, err := LoadKnowledgeBase(path)
	require.NoError(t, err)
	assert.Equal(t, kb.Chunks, loaded.Chunks)
	assert.Equal(t, kb.Embeddings, loaded.Embeddings)
}
