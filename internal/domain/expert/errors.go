package expert

import "errors"

// Sentinel kinds for record errors.
var (
	ErrMissingID    = errors.New(MsgMissingID)
	ErrUnknownField = errors.New("unknown field")
	ErrInvalid      = errors.New("invalid record")
)
