package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyConfig     = "config"
	KeyPlugin     = "plugin"
	KeyFilter     = "filter"
	KeyMode       = "mode"
	KeyDirs       = "dirs"
	KeyEntries    = "entries"
	KeyFormat     = "format"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Config(p string) slog.Attr       { return slog.String(KeyConfig, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Filter(name string) slog.Attr    { return slog.String(KeyFilter, name) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Dirs(n int) slog.Attr            { return slog.Int(KeyDirs, n) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Event(op string) slog.Attr       { return slog.String(KeyEvent, op) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
