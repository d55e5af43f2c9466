package synth

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rcalloway/notesynth/internal/genai"
)

// fakeGen scripts generation responses for tests and counts calls.
type fakeGen struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeGen) Generate(ctx context.Context, prompt string, opts genai.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeGen) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
