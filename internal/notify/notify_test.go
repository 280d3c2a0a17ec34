package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingToast struct {
	message string
	shown   int
}

func (r *recordingToast) SetMessage(message string) { r.message = message }
func (r *recordingToast) Show()                     { r.shown++ }

func TestShow(t *testing.T) {
	toast := &recordingToast{}
	Show(toast, "done")
	assert.Equal(t, "done", toast.message)
	assert.Equal(t, 1, toast.shown)

	assert.NotPanics(t, func() {
		Show(nil, "ignored")
	})
}

func TestConsole(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		Show(NewConsole(&buf, false), "normalised anim.json")
		assert.Equal(t, "normalised anim.json\n", buf.String())
	})

	t.Run("colored", func(t *testing.T) {
		var buf bytes.Buffer
		Show(NewConsole(&buf, true), "normalised anim.json")
		assert.Contains(t, buf.String(), "normalised anim.json")
	})

	t.Run("empty message prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsole(&buf, false).Show()
		assert.Empty(t, buf.String())
	})

	t.Run("nil console", func(t *testing.T) {
		var c *Console
		assert.NotPanics(t, func() {
			c.SetMessage("x")
			c.Show()
		})
	})
}
