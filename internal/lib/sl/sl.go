// Package sl holds small helpers for structured logging with log/slog.
package sl

import "log/slog"

// Err turns err into an "error" attribute.
//
//	log.Error("failed to approve content", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
