package parser

import (
	"log/slog"

	"github.com/casegen/casegen/lexer"
)

// Notice is a non-fatal diagnostic surfaced during parsing, such as the
// deprecation warning for the wrapped expression form. Notices never halt
// a parse.
type Notice struct {
	Message string
	Pos     lexer.Position
}

// NoticeHandler receives notices as they are committed. The parsing core
// only calls this interface; where the notices end up (console, collected
// for tooling) is the caller's choice.
type NoticeHandler interface {
	Emit(Notice)
}

// ConsoleNotices logs notices through slog
type ConsoleNotices struct {
	Logger *slog.Logger
}

func (h ConsoleNotices) Emit(n Notice) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(n.Message, "line", n.Pos.Line, "column", n.Pos.Column)
}

// NoticeCollector accumulates notices for later inspection
type NoticeCollector struct {
	Notices []Notice
}

func (h *NoticeCollector) Emit(n Notice) {
	h.Notices = append(h.Notices, n)
}
