package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
)

// NameKey is the attribute carrying the logger name.
const NameKey = "logger"

const (
	colorBlue    = "\x1b[34;20m"
	colorGreen   = "\x1b[32;20m"
	colorGrey    = "\x1b[38;20m"
	colorYellow  = "\x1b[33;20m"
	colorRed     = "\x1b[31;20m"
	colorBoldRed = "\x1b[31;1m"
	colorReset   = "\x1b[0m"
)

// ConsoleHandler writes one coloured line per record:
//
//	[host][2006-01-02 15:04:05] INFO     >> name :   42 - message key=value
type ConsoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	host  string
	level slog.Leveler
	color bool
	name  string
	attrs []slog.Attr
	group string
}

// NewConsoleHandler creates a console handler
func NewConsoleHandler(w io.Writer, host string, level slog.Leveler, color bool) *ConsoleHandler {
	return &ConsoleHandler{mu: &sync.Mutex{}, w: w, host: host, level: level, color: color}
}

func (h *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	line := 0
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		line = frame.Line
	}
	name := h.name
	if name == "" {
		name = "root"
	}

	var sb strings.Builder
	if h.color {
		sb.WriteString(levelColor(r.Level))
	}
	fmt.Fprintf(&sb, "[%s][%s] %-8s >> %s : %4d - %s",
		h.host, r.Time.Format("2006-01-02 15:04:05"), LevelName(r.Level), name, line, r.Message)

	writeAttr := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&sb, " %s=%v", key, a.Value.Resolve())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == NameKey {
			return true
		}
		writeAttr(a)
		return true
	})
	if h.color {
		sb.WriteString(colorReset)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if a.Key == NameKey && h.group == "" {
			next.name = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return &next
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError+4:
		return colorBoldRed
	case l >= slog.LevelError:
		return colorRed
	case l >= slog.LevelWarn:
		return colorYellow
	case l >= slog.LevelInfo:
		return colorGrey
	case l >= LevelTrace:
		return colorGreen
	default:
		return colorBlue
	}
}
