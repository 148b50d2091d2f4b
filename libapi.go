package msgmux

import (
	runtimepkg "github.com/drblury/msgmux/internal/runtime"
	configpkg "github.com/drblury/msgmux/internal/runtime/config"
	errspkg "github.com/drblury/msgmux/internal/runtime/errors"
	idspkg "github.com/drblury/msgmux/internal/runtime/ids"
	jsoncodec "github.com/drblury/msgmux/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/msgmux/internal/runtime/logging"
	metadatapkg "github.com/drblury/msgmux/internal/runtime/metadata"
)

type (
	Message         = runtimepkg.Message
	Handler         = runtimepkg.Handler
	HandlerFunc     = runtimepkg.HandlerFunc
	SyncHandlerFunc = runtimepkg.SyncHandlerFunc

	Builder       = runtimepkg.Builder
	BuilderOption = runtimepkg.BuilderOption
	Registry      = runtimepkg.Registry
	Middleware    = runtimepkg.Middleware

	// Dispatch lifecycle hooks
	DispatchContext = runtimepkg.DispatchContext
	DispatchHooks   = runtimepkg.DispatchHooks

	// Introspection
	HandlerInfo   = runtimepkg.HandlerInfo
	StatsSnapshot = runtimepkg.StatsSnapshot

	Config                = configpkg.Config
	ConfigValidationError = configpkg.ConfigValidationError

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	UnknownMessageTypeError = errspkg.UnknownMessageTypeError
)

var (
	NewBuilder = runtimepkg.NewBuilder
	WithLogger = runtimepkg.WithLogger
	WithConfig = runtimepkg.WithConfig

	NewMessage             = runtimepkg.NewMessage
	NewMessageWithMetadata = runtimepkg.NewMessageWithMetadata
	SyncHandler            = runtimepkg.SyncHandler

	// Middleware
	DefaultMiddlewares      = runtimepkg.DefaultMiddlewares
	LogMessagesMiddleware   = runtimepkg.LogMessagesMiddleware
	TracerMiddleware        = runtimepkg.TracerMiddleware
	MetricsMiddleware       = runtimepkg.MetricsMiddleware
	DispatchHooksMiddleware = runtimepkg.DispatchHooksMiddleware

	// Dispatch lifecycle hooks
	LoggingHooks  = runtimepkg.LoggingHooks
	MetricsHooks  = runtimepkg.MetricsHooks
	AlertingHooks = runtimepkg.AlertingHooks

	// Introspection
	SnapshotJSON = runtimepkg.SnapshotJSON

	ValidateConfig = configpkg.ValidateConfig

	// Error sentinels
	ErrInvalidArgument     = errspkg.ErrInvalidArgument
	ErrHandlerRequired     = errspkg.ErrHandlerRequired
	ErrMessageTypeRequired = errspkg.ErrMessageTypeRequired
	ErrMessageRequired     = errspkg.ErrMessageRequired
	ErrLoggerRequired      = errspkg.ErrLoggerRequired
	ErrMiddlewareRequired  = errspkg.ErrMiddlewareRequired
	ErrUnknownMessageType  = errspkg.ErrUnknownMessageType

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter

	NewMetadata = metadatapkg.New

	CreateULID = idspkg.CreateULID

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode
	Decode        = jsoncodec.Decode
)

// Metadata keys - use these constants for standard metadata fields.
const (
	MetadataKeyCorrelationID = runtimepkg.MetadataKeyCorrelationID
)
