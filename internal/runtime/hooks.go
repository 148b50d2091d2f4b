package runtime

import (
	"context"
	"time"

	loggingpkg "github.com/drblury/msgmux/internal/runtime/logging"
	metadatapkg "github.com/drblury/msgmux/internal/runtime/metadata"
)

// DispatchContext provides information about one dispatch to hooks.
type DispatchContext struct {
	// MessageType is the type tag of the dispatched message.
	MessageType string
	// MessageUUID identifies the message.
	MessageUUID string
	// Metadata contains the message metadata.
	Metadata metadatapkg.Metadata
	// Context is the context the dispatch ran under.
	Context context.Context
	// StartedAt is when the handler started.
	StartedAt time.Time
	// Duration is how long the handler took (set in OnDispatchDone and
	// OnDispatchError only).
	Duration time.Duration
}

// DispatchHooks defines callbacks around handler execution. Nil hooks are
// simply not called.
type DispatchHooks struct {
	// OnDispatchStart runs before the handler is invoked.
	OnDispatchStart func(ctx DispatchContext)

	// OnDispatchDone runs after the handler returns nil.
	OnDispatchDone func(ctx DispatchContext)

	// OnDispatchError runs after the handler returns an error.
	OnDispatchError func(ctx DispatchContext, err error)
}

// Merge combines two DispatchHooks; other's hooks run after h's.
func (h DispatchHooks) Merge(other DispatchHooks) DispatchHooks {
	return DispatchHooks{
		OnDispatchStart: chainStartHooks(h.OnDispatchStart, other.OnDispatchStart),
		OnDispatchDone:  chainDoneHooks(h.OnDispatchDone, other.OnDispatchDone),
		OnDispatchError: chainErrorHooks(h.OnDispatchError, other.OnDispatchError),
	}
}

func chainStartHooks(a, b func(DispatchContext)) func(DispatchContext) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx DispatchContext) {
		a(ctx)
		b(ctx)
	}
}

func chainDoneHooks(a, b func(DispatchContext)) func(DispatchContext) {
	return chainStartHooks(a, b)
}

func chainErrorHooks(a, b func(DispatchContext, error)) func(DispatchContext, error) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx DispatchContext, err error) {
		a(ctx, err)
		b(ctx, err)
	}
}

// DispatchHooksMiddleware exposes the hooks as a dispatch middleware so they
// can be installed with Builder.Use.
func DispatchHooksMiddleware(hooks DispatchHooks) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *Message) error {
			startedAt := time.Now()
			dispatchCtx := DispatchContext{
				MessageType: msg.Type,
				MessageUUID: msg.UUID,
				Metadata:    msg.Metadata,
				Context:     ctx,
				StartedAt:   startedAt,
			}

			if hooks.OnDispatchStart != nil {
				hooks.OnDispatchStart(dispatchCtx)
			}

			err := next(ctx, msg)
			dispatchCtx.Duration = time.Since(startedAt)

			if err != nil {
				if hooks.OnDispatchError != nil {
					hooks.OnDispatchError(dispatchCtx, err)
				}
			} else if hooks.OnDispatchDone != nil {
				hooks.OnDispatchDone(dispatchCtx)
			}

			return err
		}
	}
}

// LoggingHooks returns pre-built hooks that log the dispatch lifecycle.
func LoggingHooks(logger loggingpkg.ServiceLogger) DispatchHooks {
	return DispatchHooks{
		OnDispatchStart: func(ctx DispatchContext) {
			logger.Info("dispatch started", loggingpkg.LogFields{
				"message_type": ctx.MessageType,
				"message_uuid": ctx.MessageUUID,
			})
		},
		OnDispatchDone: func(ctx DispatchContext) {
			logger.Info("dispatch completed", loggingpkg.LogFields{
				"message_type": ctx.MessageType,
				"message_uuid": ctx.MessageUUID,
				"duration_ms":  ctx.Duration.Milliseconds(),
			})
		},
		OnDispatchError: func(ctx DispatchContext, err error) {
			logger.Error("dispatch failed", err, loggingpkg.LogFields{
				"message_type": ctx.MessageType,
				"message_uuid": ctx.MessageUUID,
				"duration_ms":  ctx.Duration.Milliseconds(),
			})
		},
	}
}

// MetricsHooks returns pre-built hooks that report dispatch outcomes to the
// supplied callbacks, keyed by message type.
func MetricsHooks(onStart, onDone, onError func(messageType string)) DispatchHooks {
	return DispatchHooks{
		OnDispatchStart: func(ctx DispatchContext) {
			if onStart != nil {
				onStart(ctx.MessageType)
			}
		},
		OnDispatchDone: func(ctx DispatchContext) {
			if onDone != nil {
				onDone(ctx.MessageType)
			}
		},
		OnDispatchError: func(ctx DispatchContext, err error) {
			if onError != nil {
				onError(ctx.MessageType)
			}
		},
	}
}

// AlertingHooks returns pre-built hooks that trigger alertFunc on errors.
func AlertingHooks(alertFunc func(ctx DispatchContext, err error)) DispatchHooks {
	return DispatchHooks{
		OnDispatchError: alertFunc,
	}
}
