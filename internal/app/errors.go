package app

import (
	"errors"

	"github.com/okian/talento/internal/domain/expert"
)

// Sentinel errors returned by Form actions.
var (
	// ErrBusy is returned while another submission for the same record is outstanding.
	ErrBusy = errors.New("request already in flight")
	// ErrMissingID is returned when the record has no identifier.
	ErrMissingID = expert.ErrMissingID
	// ErrUnconfirmed is returned when the backend answered 2xx without a truthy payload.
	ErrUnconfirmed = errors.New("update not confirmed by backend")
)
