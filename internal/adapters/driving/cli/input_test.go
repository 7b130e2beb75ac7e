package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_ReadLine(t *testing.T) {
	out := new(bytes.Buffer)
	c := NewConsole(strings.NewReader("first\r\nsecond\nlast"), out)
	ctx := context.Background()

	line, err := c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = c.ReadLine(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = c.ReadLine(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> first\n> second\n> last\n> \n", out.String())
}

func TestConsole_ReadLine_CancelledContext(t *testing.T) {
	c := NewConsole(strings.NewReader("question\n"), io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReadLine(ctx, "> ")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsole_ReadLine_BlockedReadCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.ReadLine(ctx, "> ")
		done <- err
	}()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestConsole_Println(t *testing.T) {
	out := new(bytes.Buffer)
	c := NewConsole(strings.NewReader(""), out)

	c.Println("Session ended.")

	assert.Equal(t, "Session ended.\n", out.String())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))
}
