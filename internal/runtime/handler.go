package runtime

import "context"

// Handler is the unified contract every registered handler is invoked
// through. Handle blocks until processing is complete; handlers that suspend
// on I/O or downstream calls should honour ctx cancellation themselves. The
// registry never schedules, retries, or times out handler executions.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, msg *Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg *Message) error {
	return f(ctx, msg)
}

// SyncHandlerFunc is the synchronous handler shape: it runs to completion
// before returning and takes no context.
type SyncHandlerFunc func(msg *Message) error

// SyncHandler adapts a synchronous handler into the unified contract. The
// adapted Handle invokes fn and returns its result directly, so by the time
// Handle returns the work is already complete.
func SyncHandler(fn SyncHandlerFunc) Handler {
	return HandlerFunc(func(_ context.Context, msg *Message) error {
		return fn(msg)
	})
}

// Middleware wraps the dispatch path. The chain registered on a builder is
// applied around every dispatched handler, fallback included. Middleware must
// pass handler errors through unwrapped; error translation belongs to the
// caller of Dispatch.
type Middleware func(next HandlerFunc) HandlerFunc
