package driven

import "context"

// Console is the line-oriented interactive surface.
type Console interface {
	// ReadLine shows prompt and returns the next input line without its
	// trailing newline. It returns io.EOF when input is exhausted.
	ReadLine(ctx context.Context, prompt string) (string, error)

	// Println writes one line of output.
	Println(text string)
}
