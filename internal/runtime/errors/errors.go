package errors

import (
	"fmt"
	"strconv"

	sterrors "errors"
)

// ErrInvalidArgument is the category sentinel for builder argument errors.
// Every argument sentinel below wraps it, so callers can check the whole
// family with errors.Is(err, ErrInvalidArgument).
var ErrInvalidArgument = sterrors.New("msgmux: invalid argument")

var (
	ErrHandlerRequired     = fmt.Errorf("%w: handler is required", ErrInvalidArgument)
	ErrMessageTypeRequired = fmt.Errorf("%w: message type is required", ErrInvalidArgument)
	ErrMessageRequired     = fmt.Errorf("%w: message is required", ErrInvalidArgument)
	ErrLoggerRequired      = fmt.Errorf("%w: logger is required", ErrInvalidArgument)
	ErrMiddlewareRequired  = fmt.Errorf("%w: middleware is required", ErrInvalidArgument)
)

// ErrUnknownMessageType matches any UnknownMessageTypeError via errors.Is.
var ErrUnknownMessageType = sterrors.New("msgmux: no handler registered for message type")

// UnknownMessageTypeError is returned by dispatch when neither a specific nor
// a fallback handler applies to the incoming message's type.
type UnknownMessageTypeError struct {
	MessageType string
}

func (e *UnknownMessageTypeError) Error() string {
	return "msgmux: no handler registered for message type " + strconv.Quote(e.MessageType)
}

func (e *UnknownMessageTypeError) Is(target error) bool {
	return target == ErrUnknownMessageType
}
