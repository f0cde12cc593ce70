package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"kosis-cpi/internal/config"
	"kosis-cpi/internal/pipeline"
)

// outputFormat returns the resolved output format; resolveConfig has already validated it
func outputFormat(cfg *config.Config) pipeline.Format {
	f, _ := pipeline.ParseFormat(cfg.Output)
	return f
}

// newLogger builds the run logger; logs go to w (stderr) so stdout only carries data
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// colorEnabled reports whether w is an interactive terminal and NO_COLOR is unset
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
