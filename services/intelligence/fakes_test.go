package ai

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no vector for " + text)
	}
	return vec, nil
}

type fakeGenerator struct {
	text  string
	err   error
	delay time.Duration
	last  string
	mu    sync.Mutex
}

func (f *fakeGenerator) Variant() string { return "TEST" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, _ int) (string, error) {
	f.mu.Lock()
	f.last = prompt
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}
