package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// Console writes toast-style lines to a writer (the CLI's stderr).
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ports.Notifier = (*Console)(nil)

func NewConsole(out io.Writer) *Console { return &Console{out: out} }

func (c *Console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "✔ %s\n", msg)
}

func (c *Console) Failure(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "✖ %s\n", msg)
}

// Logger routes notifications into the structured log, for contexts with no
// interactive user (the gateway).
type Logger struct {
	log *zap.Logger
}

var _ ports.Notifier = (*Logger)(nil)

func NewLogger(log *zap.Logger) *Logger { return &Logger{log: log} }

func (l *Logger) Success(msg string) { l.log.Info(msg) }
func (l *Logger) Failure(msg string) { l.log.Warn(msg) }
