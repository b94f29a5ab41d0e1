package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/sheet"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	logCloser io.Closer
	config    *Config

	sheet  *sheet.Sheet
	cursor cellref.Coord
	closer []io.Closer
}

// NewApp is the constructor for the main application. Results go to outW;
// the log goes to logW unless the config names a log file or the UI owns
// the terminal.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	w, closer, err := logOutput(cfg, logW)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, w)
	logger.Debug("Logger configured successfully.", "mode", cfg.Mode)

	return &App{
		outW:      outW,
		logger:    logger,
		logCloser: closer,
		config:    cfg,
	}, nil
}

// Sheet returns the loaded sheet. It is nil before Run. Primarily for testing.
func (a *App) Sheet() *sheet.Sheet {
	return a.sheet
}

// Close releases the mirror connection and the log file.
func (a *App) Close() error {
	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	for i := len(a.closer) - 1; i >= 0; i-- {
		if err := a.closer[i].Close(); err != nil {
			ctxlog.FromContext(ctx).Warn("Close failed.", "error", err)
		}
	}
	a.closer = nil
	if a.logCloser != nil {
		err := a.logCloser.Close()
		a.logCloser = nil
		return err
	}
	return nil
}
