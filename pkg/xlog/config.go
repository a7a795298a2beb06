package xlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConfig returns the default logging config: text records at info level
// written to stderr, so that command output on stdout stays machine readable.
func NewConfig() Config {
	return Config{
		Level:     LevelInfo,
		AddSource: false,
		AttrReplacer: ChainReplacer(
			NormalizeSourceAttrReplacer(),
			RedactAttrReplacer("token", "password"),
		),
		Format: "text",
		Writer: os.Stderr,
		File: FileConfig{
			MaxSize: 30,
		},
	}
}

// Config is the logging config.
type Config struct {
	// Level is the minimal level to output.
	Level Level
	// AddSource adds the file and line of the log call.
	AddSource bool
	// AttrReplacer rewrites attributes before they are written.
	AttrReplacer AttrReplacer

	// Format of the console records, one of ["text", "json"].
	Format string
	// Writer receives the console records, default to os.Stderr.
	Writer io.Writer

	// File configures the optional JSON file sink.
	File FileConfig
}

// FileConfig configures the rotating log file.
type FileConfig struct {
	// Path of the log file, no file is written when empty.
	Path string
	// MaxSize in megabytes before the file is rotated.
	MaxSize int
	// MaxAge in days to retain rotated files, 0 keeps them forever.
	MaxAge int
	// MaxBackups is the number of rotated files to retain, 0 keeps all.
	MaxBackups int
	// Compress rotated files with gzip.
	Compress bool
}

// BuildHandler creates a new slog.Handler with config.
func (c *Config) BuildHandler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}
	console := TextHandlerCreator
	if c.Format == "json" {
		console = JSONHandlerCreator
	}
	handlers := []slog.Handler{
		NewLeveledHandlerCreator(console)(c.writer(), opts),
	}
	if fw := c.buildFileWriter(); fw != nil {
		handlers = append(handlers, NewLeveledHandlerCreator(JSONHandlerCreator)(fw, opts))
	}
	if len(handlers) == 1 {
		return handlers[0]
	}
	return MultiHandler(handlers...)
}

func (c *Config) writer() io.Writer {
	if c.Writer != nil {
		return c.Writer
	}
	return os.Stderr
}

func (c *Config) buildFileWriter() io.Writer {
	if c.File.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.File.Path,
		MaxSize:    c.File.MaxSize,
		MaxAge:     c.File.MaxAge,
		MaxBackups: c.File.MaxBackups,
		Compress:   c.File.Compress,
	}
}
