// Package msgmux provides a string-keyed registry of message handlers: a
// fluent builder maps message-type tags to handlers, optionally installs a
// fallback handler, and finalises into an immutable-after-build lookup table
// exposed for resolution and dispatch only.
//
// Handlers come in two shapes. The unified contract is Handler, whose Handle
// method may suspend on ctx-aware work; synchronous functions are adapted
// with SyncHandler (or the builder's *Func methods) and are complete by the
// time Handle returns. Dispatch resolves the incoming message's type to its
// registered handler, falls back to the default handler when none matches,
// and otherwise fails with an UnknownMessageTypeError naming the type.
//
// The builder validates its arguments at the point of the call: an empty type
// tag or nil handler is rejected without mutating the registry, reported by
// Builder.Err immediately and again by Build. All other failure modes belong
// to the handlers themselves and are propagated untouched.
//
// Cross-cutting concerns attach as dispatch middleware: structured logging
// through the ServiceLogger abstraction (slog or Watermill adapters),
// OpenTelemetry tracing, Prometheus metrics, and lifecycle hooks via
// DispatchHooksMiddleware. See the examples directory for working setups.
//
// The registry does not transport, serialise, schedule, retry, or isolate:
// feeding it messages and supervising handler execution is the calling
// dispatch loop's job.
package msgmux
