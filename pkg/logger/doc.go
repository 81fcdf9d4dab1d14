// Package logger builds the slog loggers used by massmail.
//
// Two local formats are available: JSON lines for machines and a colored
// console format (charmbracelet/log) for terminals.
//
//	log := logger.New(logger.Config{
//		Format: logger.FormatConsole,
//		Level:  slog.LevelDebug,
//	}, logger.DispatchIDExtractor())
//
// # Context Extractors
//
// A ContextExtractor pulls an attribute out of the context on every log call.
// DispatchIDExtractor tags records with the dispatch identifier stored by
// WithDispatchID, so every line of one bulk send can be grouped:
//
//	ctx = logger.WithDispatchID(ctx, id)
//	log.InfoContext(ctx, "connecting")
//	// ... dispatch_id=0190c3a1-...
//
// # Sentry
//
// NewWithSentry adds a Sentry handler next to the local one when a DSN is
// configured. Errors become Sentry issues; warnings are kept as logs. Without
// a DSN, or when initialization fails, it falls back to local logging only.
// Call the returned flush func before exiting.
//
// NewNope returns a logger that discards everything; packages use it as their
// default so that logging is opt-in.
package logger
