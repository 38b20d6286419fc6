package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/input"
)

// Message log levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// MessageTimeLayout is the timestamp layout of a message line.
const MessageTimeLayout = "2006-01-02 15:04:05"

// MessageLog writes plain lines of the form
//
//	[2006-01-02 15:04:05] [level] message | Data: {"json":"payload"}
//
// to a sink. The timestamp is UTC. Safe for concurrent use.
type MessageLog struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewMessageLog returns a MessageLog writing to out, or to stderr when out is nil.
func NewMessageLog(out io.Writer) *MessageLog {
	if out == nil {
		out = os.Stderr
	}

	return &MessageLog{out: out, now: time.Now}
}

// NewMessageLogFromConfig opens the sink named by cfg.File.MessageLog as a rolling
// file. Without a file name the sink is stderr.
func NewMessageLogFromConfig(cfg Log) *MessageLog {
	f := cfg.File
	if !f.Enabled || f.MessageLog == "" {
		return NewMessageLog(nil)
	}

	return NewMessageLog(NewRollingFile(f.Path, f.MessageLog, f.InfoMaxSize, f.InfoMaxAge, f.InfoMaxBackups))
}

// Log writes one line. An empty level means info. The "| Data:" suffix is only
// written for non-empty data.
func (m *MessageLog) Log(message string, data any, level string) {
	if level == "" {
		level = LevelInfo
	}

	line := fmt.Sprintf("[%s] [%s] %s", m.now().UTC().Format(MessageTimeLayout), level, message)

	if !input.IsEmpty(data) {
		payload, err := json.Marshal(data)
		if err != nil {
			log.Warn().Err(err).Msg("message log: data is not json encodable")

			payload = []byte("null")
		}

		line += " | Data: " + string(payload)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := io.WriteString(m.out, line+"\n"); err != nil {
		ErrorHandler(err)
	}
}
