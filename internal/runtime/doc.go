/*
Package runtime implements the handler registry behind the msgmux facade.

# Architecture Overview

The package is built around one storage object with two faces: a Builder that
holds the only mutation-typed reference, and the Registry interface handed to
consumers, which resolves message types to handlers and dispatches. After
Build the registry is used for resolution only.

# Package Structure

  - builder.go: fluent Builder with argument validation and error collection
  - registry.go: the storage object, resolution, and dispatch
  - message.go: the Message envelope (ULID identity, type tag, opaque payload)
  - handler.go: the unified Handler contract and the synchronous adapter
  - middleware.go: logging, OpenTelemetry tracing, and Prometheus metrics
  - hooks.go: dispatch lifecycle hooks and pre-built presets
  - models.go: introspection snapshots and their JSON encoding

Support packages under this directory supply sentinel errors, the
ServiceLogger abstraction, metadata maps, ULID generation, config, and the
sonic-backed JSON codec.

# Dispatch Semantics

Dispatch resolves the message's type to its registered handler, falls back to
the default handler when none is registered, and fails with an
UnknownMessageTypeError when neither applies. At most one handler runs per
dispatch; handler errors propagate to the caller untouched. The registry does
not schedule, queue, retry, or time out handler executions.
*/
package runtime
