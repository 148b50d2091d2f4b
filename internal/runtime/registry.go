package runtime

import (
	"context"
	"sort"
	"sync"

	errspkg "github.com/drblury/msgmux/internal/runtime/errors"
	loggingpkg "github.com/drblury/msgmux/internal/runtime/logging"
)

// Registry is the read-only view returned by Builder.Build. It resolves an
// incoming message's type to a handler and invokes it; it exposes no way to
// mutate the underlying table. The builder holds the only mutation-typed
// reference to the store, so consumers of this interface cannot re-enter the
// build phase.
type Registry interface {
	// Dispatch resolves msg.Type and invokes the matching handler, or the
	// fallback when no specific handler is registered. When neither
	// applies it returns an UnknownMessageTypeError carrying the type.
	// At most one handler runs per call.
	Dispatch(ctx context.Context, msg *Message) error

	// Resolve returns the handler Dispatch would resolve to for the
	// given type, before middleware is applied: the specific
	// registration if present, else the fallback. The boolean reports
	// whether any handler applies.
	Resolve(messageType string) (Handler, bool)

	// Has reports whether a specific (non-fallback) handler is
	// registered for the given type.
	Has(messageType string) bool

	// HasDefault reports whether a fallback handler is set.
	HasDefault() bool

	// MessageTypes returns the sorted list of registered types.
	MessageTypes() []string

	// Len returns the number of specific registrations, excluding the
	// fallback slot.
	Len() int

	// Handlers returns an introspection snapshot of every registration,
	// fallback included, with dispatch statistics.
	Handlers() []HandlerInfo
}

// registry is the single storage object behind both capabilities: the
// builder mutates it through the unexported setters, consumers see it as the
// Registry interface. The map is guarded so dispatch stays safe while stats
// update concurrently; builder mutation remains a single-goroutine affair by
// contract.
type registry struct {
	mu       sync.RWMutex
	handlers map[string]*handlerEntry
	fallback *handlerEntry
	chain    []Middleware
	logger   loggingpkg.ServiceLogger
}

type handlerEntry struct {
	handler Handler
	stats   *DispatchStats
}

func newRegistry() *registry {
	return &registry{
		handlers: make(map[string]*handlerEntry),
		logger:   loggingpkg.Nop(),
	}
}

// Mutators below are reachable only through the Builder.

func (r *registry) setHandler(messageType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[messageType] = &handlerEntry{handler: h, stats: newDispatchStats()}
}

func (r *registry) removeHandler(messageType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, messageType)
}

func (r *registry) setDefaultHandler(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = &handlerEntry{handler: h, stats: newDispatchStats()}
}

func (r *registry) removeDefaultHandler() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = nil
}

func (r *registry) use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain = append(r.chain, mw)
}

func (r *registry) setLogger(log loggingpkg.ServiceLogger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = log
}

func (r *registry) Dispatch(ctx context.Context, msg *Message) error {
	if msg == nil {
		return errspkg.ErrMessageRequired
	}

	r.mu.RLock()
	entry, ok := r.handlers[msg.Type]
	if !ok {
		entry = r.fallback
	}
	chain := r.chain
	log := r.logger
	r.mu.RUnlock()

	if entry == nil {
		log.Debug("no handler registered", loggingpkg.LogFields{
			"message_uuid": msg.UUID,
			"message_type": msg.Type,
		})
		return &errspkg.UnknownMessageTypeError{MessageType: msg.Type}
	}

	fn := entry.invoke
	for i := len(chain) - 1; i >= 0; i-- {
		fn = chain[i](fn)
	}

	return fn(ctx, msg)
}

func (r *registry) Resolve(messageType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.handlers[messageType]; ok {
		return entry.handler, true
	}
	if r.fallback != nil {
		return r.fallback.handler, true
	}
	return nil, false
}

func (r *registry) Has(messageType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[messageType]
	return ok
}

func (r *registry) HasDefault() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback != nil
}

func (r *registry) MessageTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *registry) Handlers() []HandlerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]HandlerInfo, 0, len(r.handlers)+1)
	for _, t := range r.messageTypesLocked() {
		infos = append(infos, HandlerInfo{
			MessageType: t,
			Stats:       r.handlers[t].stats.snapshot(),
		})
	}
	if r.fallback != nil {
		infos = append(infos, HandlerInfo{
			Default: true,
			Stats:   r.fallback.stats.snapshot(),
		})
	}
	return infos
}

func (r *registry) messageTypesLocked() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// invoke runs the entry's handler and records the outcome. Handler errors
// propagate to the Dispatch caller untouched.
func (e *handlerEntry) invoke(ctx context.Context, msg *Message) error {
	done := e.stats.onDispatchStart()
	err := e.handler.Handle(ctx, msg)
	done(err)
	return err
}
