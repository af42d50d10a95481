package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsResourceExhausted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("wrap: %w", ErrResourceExhausted), true},
		{"grpc", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc other", status.Error(codes.Internal, "boom"), false},
		{"googleapi 429", &googleapi.Error{Code: 429}, true},
		{"openai 503", fmt.Errorf("call: %w", &openai.APIError{HTTPStatusCode: 503}), true},
		{"openai 400", &openai.APIError{HTTPStatusCode: 400}, false},
		{"llama.cpp oom", errors.New("CUDA out of memory"), true},
		{"plain", errors.New("bad prompt"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResourceExhausted(tt.err))
		})
	}
}
