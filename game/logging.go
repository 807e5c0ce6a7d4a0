package game

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
)

// SetupLogging installs the default JSON logger and routes the rasterizer's
// diagnostics through it. Terminal mode owns stdout, so its logs go to
// logFile or are dropped. The returned closer closes logFile, if any.
func SetupLogging(mode Mode, logFile string) (io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	case mode == ModeTerminal:
		w = io.Discard
	}

	logger := slog.New(slog.NewJSONHandler(w, nil))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return closer, nil
}
