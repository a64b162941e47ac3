package app

import (
	"github.com/okian/talento/internal/domain/expert"
	"github.com/okian/talento/pkg/logger"
)

// CloseFunc is invoked when the form closes. updated is true after a
// confirmed update or a successful delete, false when the user went back.
type CloseFunc func(rec expert.Record, updated bool)

// Option applies a configuration option to the Form.
type Option func(*Form)

// WithLogger sets a custom logger for the form.
func WithLogger(l logger.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithNotifier sets where success and error toasts go.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithOnClose sets the parent's close callback.
func WithOnClose(fn CloseFunc) Option {
	return func(f *Form) {
		if fn != nil {
			f.onClose = fn
		}
	}
}

// WithGuard shares an in-flight registry between forms. Forms built without
// one share the process-wide default.
func WithGuard(g Guard) Option {
	return func(f *Form) {
		if g != nil {
			f.guard = g
		}
	}
}
