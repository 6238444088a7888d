package enhance

import "context"

// Completer sends a prompt to the language model and returns the raw
// completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
