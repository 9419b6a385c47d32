package logging

import (
	"log/slog"
	"os"
)

// Init configures the global slog logger: JSON in production, text otherwise.
func Init(production bool) {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

// WithUser scopes a logger to one user.
func WithUser(userID uint) *slog.Logger {
	return slog.With("user_id", userID)
}
