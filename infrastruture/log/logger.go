// Package logger provides prefixed, colored leveled logging.
package logger

import (
	"errors"
	"io"

	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

var (
	ErrEmptyPrefix = errors.New("logger prefix must not be empty")
	ErrNilWriter   = errors.New("logger writer must not be nil")
)

var _ i.Logger = &Logger{}

// Logger writes timestamped, leveled lines tagged with a colored prefix.
type Logger struct {
	l *charmlog.Logger
}

// New creates a logger that tags every line with prefix drawn in color.
// color is an ANSI color code such as config.ColorCyan.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	l := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Level:           charmlog.DebugLevel,
	})

	styles := charmlog.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	l.SetStyles(styles)

	return &Logger{l: l}, nil
}

// Info logs an informational message.
func (lg *Logger) Info(msg string) {
	lg.l.Info(msg)
}

// Warning logs a recoverable problem.
func (lg *Logger) Warning(msg string) {
	lg.l.Warn(msg)
}

// Error logs a failure.
func (lg *Logger) Error(msg string) {
	lg.l.Error(msg)
}
