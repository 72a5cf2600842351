package logger

import (
	"go.uber.org/zap"
)

// New returns a human-readable development logger or a JSON production
// logger.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
