package provider

import (
	"context"
	"net/http"
	"time"
)

// TextProvider rewrites a short prompt into a richer one.
type TextProvider interface {
	Name() string
	Enhance(ctx context.Context, prompt string) (string, error)
}

// ImageProvider produces raw image bytes from a prompt.
type ImageProvider interface {
	Name() string
	GenerateImage(ctx context.Context, prompt, model string) ([]byte, error)
}

// VideoProvider produces a hosted video URL from a prompt.
type VideoProvider interface {
	Name() string
	GenerateVideo(ctx context.Context, prompt, model string) (string, error)
}

// ImageEditProvider transforms an existing image (background removal,
// style transfer) with the given model and instruction.
type ImageEditProvider interface {
	Name() string
	EditImage(ctx context.Context, image []byte, model, instruction string) ([]byte, error)
}

// DefaultTimeout bounds every provider HTTP call. A timed-out call surfaces
// as a ProviderError and the fallback chain advances.
const DefaultTimeout = 60 * time.Second

// NewHTTPClient returns the client every adapter uses.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}
