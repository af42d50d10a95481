package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Chunk is one retrievable passage of the knowledge base.
type Chunk struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// KnowledgeBase pairs every chunk with its embedding; Embeddings[i] belongs to Chunks[i].
type KnowledgeBase struct {
	Chunks     []Chunk     `json:"chunks" yaml:"chunks"`
	Embeddings [][]float32 `json:"embeddings,omitempty" yaml:"embeddings,omitempty"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadKnowledgeBase reads a JSON or YAML knowledge base, picked by file extension.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var kb KnowledgeBase
	if isYAML(path) {
		err = yaml.Unmarshal(data, &kb)
	} else {
		err = json.Unmarshal(data, &kb)
	}
	if err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	if len(kb.Embeddings) > len(kb.Chunks) {
		return nil, fmt.Errorf("knowledge base %s has %d embeddings for %d chunks", path, len(kb.Embeddings), len(kb.Chunks))
	}
	return &kb, nil
}

// Save writes the knowledge base in the format implied by path.
func (kb *KnowledgeBase) Save(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(kb)
	} else {
		data, err = json.MarshalIndent(kb, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}

// EmbedMissing computes the embedding of every chunk that has none and returns how many
// were computed.
func (kb *KnowledgeBase) EmbedMissing(ctx context.Context, embedder Embedder) (int, error) {
	for len(kb.Embeddings) < len(kb.Chunks) {
		kb.Embeddings = append(kb.Embeddings, nil)
	}
	computed := 0
	for i, chunk := range kb.Chunks {
		if len(kb.Embeddings[i]) > 0 {
			continue
		}
		vec, err := embedder.Embed(ctx, Normalize(chunk.Text))
		if err != nil {
			return computed, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		kb.Embeddings[i] = vec
		computed++
	}
	return computed, nil
}

func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.Chunks)
}
