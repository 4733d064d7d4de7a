package xlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConfig returns the default logging configuration.
func NewConfig() Config {
	return Config{
		Level:        slog.LevelInfo,
		AddSource:    true,
		AttrReplacer: NormalizeSourceAttrReplacer(),
		StdFormat:    "text",
		StdWriter:    os.Stdout,
		Path:         "",
		MaxSize:      30,
		MaxAge:       0,
		MaxBackups:   0,
		Compress:     false,
	}
}

// Config holds the logging configuration.
type Config struct {
	// Level is the minimum level logged, default LevelInfo.
	Level slog.Level
	// AddSource controls whether source file/line is attached to each record.
	AddSource bool
	// AttrReplacer rewrites specific attributes, default NormalizeSourceAttrReplacer.
	AttrReplacer AttrReplacer

	// StdFormat is the console output format, one of ["text", "json"].
	StdFormat string
	// StdWriter is the console io.Writer, default os.Stdout.
	StdWriter io.Writer

	// Path is the log file path; empty disables file output.
	Path string
	// MaxSize is the max size in MB of a log file before it gets rotated, default 30.
	MaxSize int
	// MaxAge is the max number of days to retain old log files, default unlimited.
	MaxAge int
	// MaxBackups is the max number of old log files to retain, default unlimited.
	MaxBackups int
	// Compress controls whether rotated log files are compressed.
	Compress bool
}

// BuildHandler creates a new slog.Handler with config.
func (c *Config) BuildHandler() slog.Handler {
	opts := c.buildHandlerOptions()
	if c.StdFormat == "json" {
		writer := c.StdWriter
		if fw := c.buildFileWriter(); fw != nil {
			writer = io.MultiWriter(c.StdWriter, c.buildFileWriter())
		}
		return NewLeveledHandlerCreator(JSONHandlerCreator)(writer, opts)
	}

	// console output format as "text"
	handlers := []slog.Handler{}

	stdHandler := NewLeveledHandlerCreator(TextHandlerCreator)(c.StdWriter, opts)
	handlers = append(handlers, stdHandler)

	if fw := c.buildFileWriter(); fw != nil {
		fileHandler := NewLeveledHandlerCreator(JSONHandlerCreator)(fw, opts)
		handlers = append(handlers, fileHandler)
	}
	return MultiHandler(handlers...)
}

func (c *Config) buildFileWriter() io.Writer {
	if c.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

func (c *Config) buildHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}
}
