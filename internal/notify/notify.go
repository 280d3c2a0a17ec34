// Package notify shows short completion messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Toast is a message display owned by the caller.
type Toast interface {
	SetMessage(message string)
	Show()
}

// Show sets message on toast and displays it. A nil toast is ignored.
func Show(toast Toast, message string) {
	if toast == nil {
		return
	}
	toast.SetMessage(message)
	toast.Show()
}

// Console is a Toast that prints to a writer, usually standard error.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	colors  text.Colors
	message string
}

// NewConsole creates a console toast writing to out.
// Messages are colored unless colored is false.
func NewConsole(out io.Writer, colored bool) *Console {
	c := &Console{out: out}
	if colored {
		c.colors = text.Colors{text.FgGreen, text.Bold}
	}
	return c
}

func (c *Console) SetMessage(message string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = message
}

func (c *Console) Show() {
	if c == nil || c.out == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.message == "" {
		return
	}
	msg := c.message
	if len(c.colors) > 0 {
		msg = c.colors.Sprint(msg)
	}
	_, _ = fmt.Fprintln(c.out, msg)
}
