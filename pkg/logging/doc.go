// Package logging builds the *slog.Logger used across wirestub.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("listening", "port", 7070)
//
// Components accept a *slog.Logger through an option and fall back to
// Nop when none is given. When Config.File is set, records are written to
// both Output and the file.
package logging
