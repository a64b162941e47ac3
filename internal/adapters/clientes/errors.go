package clientes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/talento/internal/domain/expert"
)

// Sentinel kinds for backend errors.
var (
	ErrRequestFailed = errors.New("request failed")
	ErrNotFound      = errors.New("cliente not found")
	ErrMissingID     = expert.ErrMissingID
)

// RequestError describes a failed backend call. Message holds the backend's
// own explanation when the error body carried one.
type RequestError struct {
	Op         string
	StatusCode int // 0 when no response arrived
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	default:
		return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// Unwrap exposes both the kind and the transport cause.
func (e *RequestError) Unwrap() []error {
	kinds := []error{ErrRequestFailed}
	if e.StatusCode == http.StatusNotFound {
		kinds = append(kinds, ErrNotFound)
	}
	if e.Err != nil {
		kinds = append(kinds, e.Err)
	}
	return kinds
}

// UserMessage returns the backend's explanation, "" when there was none.
func (e *RequestError) UserMessage() string { return e.Message }
