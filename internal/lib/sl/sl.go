package sl

import (
	"log/slog"
)

// Err returns a slog attr for an error value.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module tags log records with the component they came from.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret logs a token-like value keeping only a recognizable tail.
func Secret(key, value string) slog.Attr {
	masked := "***"
	if n := len(value); n > 4 {
		masked = "***" + value[n-4:]
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
