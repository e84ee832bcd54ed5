package cart

import "go.uber.org/zap"

// NoticeLevel is the severity of a shopper-facing notice
type NoticeLevel string

const (
	NoticeLoading NoticeLevel = "loading"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the shopper. Notices sharing a LineID
// replace one another, so a loading notice is superseded by its outcome.
type Notice struct {
	Level  NoticeLevel `json:"level"`
	Text   string      `json:"text"`
	LineID string      `json:"lineId,omitempty"`
}

// Notifier receives notices as mutations progress. Implementations must be
// safe for concurrent use.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

// Notify implements Notifier
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

// LogNotifier writes notices to a logger at debug level
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier
func (l *LogNotifier) Notify(n Notice) {
	l.logger.Debug("cart notice",
		zap.String("level", string(n.Level)),
		zap.String("text", n.Text),
		zap.String("line_id", n.LineID),
	)
}
