package runtime

import (
	"errors"

	configpkg "github.com/drblury/msgmux/internal/runtime/config"
	errspkg "github.com/drblury/msgmux/internal/runtime/errors"
	loggingpkg "github.com/drblury/msgmux/internal/runtime/logging"
)

// Builder assembles a handler registry through a chain of calls and hands it
// out as a read-only Registry. Every mutator returns the builder so calls
// chain; call order is the only thing that determines the final state, and
// the last call for a given type or for the fallback slot wins.
//
// An invalid call (empty type, nil handler) never mutates the registry. It is
// recorded and reported both by Err, immediately after the call, and by
// Build. Builders are not safe for concurrent mutation; drive one from a
// single goroutine.
type Builder struct {
	reg  *registry
	errs []error
	log  loggingpkg.ServiceLogger
}

// BuilderOption customises a Builder at construction time.
type BuilderOption func(*Builder)

// WithLogger routes builder rejections and dispatch diagnostics through the
// supplied logger. The default discards everything.
func WithLogger(log loggingpkg.ServiceLogger) BuilderOption {
	return func(b *Builder) {
		if log == nil {
			b.record(errspkg.ErrLoggerRequired)
			return
		}
		b.log = log
		b.reg.setLogger(log)
	}
}

// WithConfig validates cfg and installs the default middleware chain it
// enables (message logging, tracing, metrics). A nil config is a no-op.
// Options apply in order, so pass WithLogger before WithConfig when the
// logging middleware should use it.
func WithConfig(cfg *configpkg.Config) BuilderOption {
	return func(b *Builder) {
		if cfg == nil {
			return
		}
		if err := configpkg.ValidateConfig(cfg); err != nil {
			b.record(err)
			return
		}
		for _, mw := range DefaultMiddlewares(cfg, b.log) {
			b.reg.use(mw)
		}
	}
}

// NewBuilder returns a Builder owning a fresh, empty registry.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		reg: newRegistry(),
		log: loggingpkg.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetHandler registers h for the given message type, silently replacing any
// existing registration for that type.
func (b *Builder) SetHandler(messageType string, h Handler) *Builder {
	if err := validateRegistration(messageType, h); err != nil {
		b.reject("set handler", messageType, err)
		return b
	}
	b.reg.setHandler(messageType, h)
	return b
}

// SetHandlerFunc registers a synchronous handler for the given message type.
// The function is adapted into the unified contract via SyncHandler.
func (b *Builder) SetHandlerFunc(messageType string, fn SyncHandlerFunc) *Builder {
	if fn == nil {
		b.reject("set handler func", messageType, errspkg.ErrHandlerRequired)
		return b
	}
	return b.SetHandler(messageType, SyncHandler(fn))
}

// RemoveHandler removes the registration for the given message type. Removing
// an unregistered type is a no-op.
func (b *Builder) RemoveHandler(messageType string) *Builder {
	if messageType == "" {
		b.reject("remove handler", messageType, errspkg.ErrMessageTypeRequired)
		return b
	}
	b.reg.removeHandler(messageType)
	return b
}

// SetDefaultHandler installs h as the fallback, replacing any previous one.
func (b *Builder) SetDefaultHandler(h Handler) *Builder {
	if h == nil {
		b.reject("set default handler", "", errspkg.ErrHandlerRequired)
		return b
	}
	b.reg.setDefaultHandler(h)
	return b
}

// SetDefaultHandlerFunc installs a synchronous fallback handler.
func (b *Builder) SetDefaultHandlerFunc(fn SyncHandlerFunc) *Builder {
	if fn == nil {
		b.reject("set default handler func", "", errspkg.ErrHandlerRequired)
		return b
	}
	return b.SetDefaultHandler(SyncHandler(fn))
}

// RemoveDefaultHandler clears the fallback slot unconditionally.
func (b *Builder) RemoveDefaultHandler() *Builder {
	b.reg.removeDefaultHandler()
	return b
}

// Use appends mw to the dispatch middleware chain. Middleware runs in the
// order it was added, around every dispatched handler, fallback included.
func (b *Builder) Use(mw Middleware) *Builder {
	if mw == nil {
		b.reject("use middleware", "", errspkg.ErrMiddlewareRequired)
		return b
	}
	b.reg.use(mw)
	return b
}

// Err returns the errors recorded by invalid calls so far, joined. It lets
// callers detect a rejected call right where it happened instead of waiting
// for Build.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Build returns the finished registry as its read-only view. Calling Build
// again returns a view over the same shared store. When any builder call was
// rejected, Build returns the joined errors and no registry.
func (b *Builder) Build() (Registry, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b.reg, nil
}

// MustBuild is Build that panics on error, for wiring done at program start.
func (b *Builder) MustBuild() Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}

func validateRegistration(messageType string, h Handler) error {
	if messageType == "" {
		return errspkg.ErrMessageTypeRequired
	}
	if h == nil {
		return errspkg.ErrHandlerRequired
	}
	return nil
}

func (b *Builder) record(err error) {
	b.errs = append(b.errs, err)
}

func (b *Builder) reject(op, messageType string, err error) {
	b.record(err)
	fields := loggingpkg.LogFields{"operation": op}
	if messageType != "" {
		fields["message_type"] = messageType
	}
	b.log.Error("builder call rejected", err, fields)
}
