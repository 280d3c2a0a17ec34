package context

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	v1 "github.com/lethe222/lottie-preview-huanfu/internal/config/v1"
	"github.com/lethe222/lottie-preview-huanfu/internal/notify"
)

type ctxKey string

const key ctxKey = "github.com/lethe222/lottie-preview-huanfu/internal/context"

// Context is the lottiefix command line context.
// It carries the centrally loaded structures that every command reads.
// It is stored in a context.Context as a pointer, so lookups stay O(1) no matter
// how many values are layered on top.
type Context struct {
	mu sync.RWMutex

	// configuration is the merged configuration file content.
	// In case no file was found it is empty, and built-in defaults apply.
	configuration *v1.Config

	// toast receives the completion message of a command. Nil silences it.
	toast notify.Toast
}

// WithConfiguration returns a context carrying cfg.
// It can be retrieved with [FromContext] and [Context.Configuration].
func WithConfiguration(ctx context.Context, cfg *v1.Config) context.Context {
	ctx, lctx := retrieveOrCreateContext(ctx)
	lctx.mu.Lock()
	defer lctx.mu.Unlock()
	lctx.configuration = cfg
	return ctx
}

// WithToast returns a context carrying toast.
// It can be retrieved with [FromContext] and [Context.Toast].
func WithToast(ctx context.Context, toast notify.Toast) context.Context {
	ctx, lctx := retrieveOrCreateContext(ctx)
	lctx.mu.Lock()
	defer lctx.mu.Unlock()
	lctx.toast = toast
	return ctx
}

// Register makes sure the command context holds a Context.
func Register(cmd *cobra.Command) {
	ctx, _ := retrieveOrCreateContext(cmd.Context())
	cmd.SetContext(ctx)
}

func (ctx *Context) Configuration() *v1.Config {
	if ctx == nil {
		return nil
	}
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.configuration
}

func (ctx *Context) Toast() notify.Toast {
	if ctx == nil {
		return nil
	}
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.toast
}

// FromContext retrieves the lottiefix context from ctx, or nil if there is none.
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}

	if v, ok := ctx.Value(key).(*Context); ok {
		return v
	}
	return nil
}

// WithContext creates a new context with the given lottiefix context.
func WithContext(ctx context.Context, c *Context) context.Context {
	if c == nil {
		return nil
	}
	return context.WithValue(ctx, key, c)
}

func retrieveOrCreateContext(ctx context.Context) (context.Context, *Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	lctx := FromContext(ctx)
	if lctx == nil {
		lctx = &Context{}
		ctx = WithContext(ctx, lctx)
	}
	return ctx, lctx
}
