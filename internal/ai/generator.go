// Package ai wraps the hosted generative-text model behind a one-method
// interface.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrModelNotFound means the configured model does not exist or the key
	// cannot reach it.
	ErrModelNotFound = errors.New("generative model not found")
	// ErrRateLimited means the upstream quota is exhausted.
	ErrRateLimited = errors.New("generative model rate limited")
	// ErrUnavailable means no generator is configured.
	ErrUnavailable = errors.New("generative model not configured")
)

// Generator turns a prompt into text.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
