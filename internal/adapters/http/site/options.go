package site

import (
	"github.com/okian/talento/internal/app"
	"github.com/okian/talento/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for the site handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReturnPath sets where the browser goes after the form closes.
func WithReturnPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.returnPath = path
		}
	}
}

// WithGuard sets the in-flight registry shared by all edit forms.
func WithGuard(g app.Guard) Option {
	return func(s *Server) {
		if g != nil {
			s.guard = g
		}
	}
}
