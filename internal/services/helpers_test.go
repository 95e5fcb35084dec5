package services

import (
	"context"

	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
)

// clientFunc adapts a plain function to llm.Client so each test can script
// the gateway inline.
type clientFunc func(ctx context.Context, req llm.CompletionRequest) (string, error)

func (f clientFunc) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return f(ctx, req)
}
