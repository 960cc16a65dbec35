package app

import (
	"log/slog"

	"github.com/treykane/flowbox/internal/logging"
)

// appLog is the structured logger for the UI. Output goes to stderr so it
// never interleaves with the Bubble Tea frame on stdout; the level comes from
// FLOWBOX_LOG_LEVEL.
var appLog = logging.New("app")

// setStatusError shows status in the footer and logs err with attrs.
//
//	m.setStatusError("Layout failed", err, "width", width)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
