// Package logtail reads the tail of mealmarket's JSON log file.
//
// The TUI owns the terminal, so diagnostics go to the log file configured by
// internal/logging. The `mealmarket logs` command uses this package to show
// recent records without leaving the shell.
//
// # Reading
//
// Read keeps a ring buffer of maxLines while scanning the file once, so
// memory stays O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// A missing file yields no lines and no error; the log is created lazily.
//
// # Parsing
//
// Parse decodes one zap JSON record into an Entry (time, level, logger name,
// message and remaining fields). Lines that are not JSON come back as an
// info-level entry with the whole line as the message. Tail combines Read and
// Parse and drops entries below a minimum level.
//
// Entry.Format renders a record on one line with its fields sorted by key:
//
//	2026-03-01 12:30:45 ERROR [mealmarket.favorites] save favorites failed error=disk full
package logtail
