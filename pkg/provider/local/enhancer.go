package local

import (
	"context"
	"strings"
)

// Enhancer is the terminal fallback for prompt enhancement. It is a pure
// function over the prompt text and never fails, which guarantees the
// enhancement chain as a whole always succeeds.
type Enhancer struct{}

func NewEnhancer() *Enhancer {
	return &Enhancer{}
}

func (e *Enhancer) Name() string {
	return "local"
}

// boosts are appended unless the prompt already carries an equivalent
// keyword, so re-enhancing an enhanced prompt changes nothing.
var boosts = []struct {
	phrase   string
	keywords []string
}{
	{"highly detailed", []string{"detailed"}},
	{"professional quality", []string{"quality", "professional"}},
	{"8k resolution", []string{"8k", "4k", "resolution"}},
}

func (e *Enhancer) Enhance(_ context.Context, prompt string) (string, error) {
	enhanced := prompt
	lower := strings.ToLower(prompt)

	for _, boost := range boosts {
		present := false
		for _, kw := range boost.keywords {
			if strings.Contains(lower, kw) {
				present = true
				break
			}
		}
		if !present {
			enhanced = enhanced + ", " + boost.phrase
		}
	}

	return enhanced, nil
}
