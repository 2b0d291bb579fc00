// Package logging configures the process wide log15 root handler.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DefaultLevel = "warn"

type Config struct {
	Level      string
	File       string
	FileLevel  string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Setup installs console and optional rotating file handlers on the root
// logger. Loggers created with New pick up the change.
func Setup(cfg Config, console io.Writer) error {
	if console == nil {
		console = os.Stderr
	}

	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	handlers := []log.Handler{
		log.LvlFilterHandler(lvl, log.StreamHandler(console, consoleFormat(console))),
	}

	if file := strings.TrimSpace(cfg.File); file != "" {
		fileLvl := lvl
		if cfg.FileLevel != "" {
			fileLvl, err = parseLevel(cfg.FileLevel)
			if err != nil {
				return err
			}
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		writer := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		handlers = append(handlers, log.LvlFilterHandler(fileLvl, log.StreamHandler(writer, log.LogfmtFormat())))
	}

	log.Root().SetHandler(log.MultiHandler(handlers...))
	return nil
}

func Discard() {
	log.Root().SetHandler(log.DiscardHandler())
}

func New(module string) log.Logger {
	return log.New("module", module)
}

func consoleFormat(w io.Writer) log.Format {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return log.TerminalFormat()
	}
	return log.LogfmtFormat()
}

func parseLevel(level string) (log.Lvl, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := log.LvlFromString(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return lvl, nil
}
