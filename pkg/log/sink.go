package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/security"
)

// LogEvent is a decoded log record routed to sinks.
type LogEvent struct {
	Level     zerolog.Level
	Message   string
	Fields    map[string]any
	Timestamp time.Time
}

// Sink is a log output destination.
type Sink interface {
	Write(event *LogEvent) error
	io.Closer
}

// Router is the zerolog output writer. It decodes each JSON log line into a
// LogEvent, redacts secrets, and fans the event out to every sink.
type Router struct {
	sinks    []Sink
	redactor *security.Redactor
}

func NewRouter(sinks ...Sink) *Router {
	return &Router{sinks: sinks}
}

func (r *Router) AddSink(sink Sink) {
	r.sinks = append(r.sinks, sink)
}

// SetRedactor attaches a secret redactor applied to every event before it
// reaches any sink.
func (r *Router) SetRedactor(redactor *security.Redactor) {
	r.redactor = redactor
}

func (r *Router) Write(p []byte) (n int, err error) {
	var raw map[string]any
	if err := json.Unmarshal(p, &raw); err != nil {
		fmt.Fprintf(os.Stderr, "log router: cannot decode log line: %v, data: %s\n", err, string(p))
		return len(p), nil
	}

	evt := &LogEvent{
		Level:  zerolog.InfoLevel,
		Fields: make(map[string]any),
	}

	if lvlStr, ok := raw[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(lvlStr); err == nil {
			evt.Level = lvl
		}
	}
	if msg, ok := raw[zerolog.MessageFieldName].(string); ok {
		evt.Message = msg
	}
	if tsStr, ok := raw[zerolog.TimestampFieldName].(string); ok {
		evt.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	reserved := map[string]struct{}{
		zerolog.LevelFieldName:     {},
		zerolog.MessageFieldName:   {},
		zerolog.TimestampFieldName: {},
	}
	for k, v := range raw {
		if _, skip := reserved[k]; !skip {
			evt.Fields[k] = v
		}
	}

	if r.redactor != nil {
		evt.Message = r.redactor.Redact(evt.Message)
		for k, v := range evt.Fields {
			if strVal, ok := v.(string); ok {
				evt.Fields[k] = r.redactor.Redact(strVal)
			}
		}
	}

	for _, sink := range r.sinks {
		if err := sink.Write(evt); err != nil {
			fmt.Fprintf(os.Stderr, "log router: sink write failed: %v\n", err)
		}
	}

	return len(p), nil
}

func (r *Router) Close() error {
	var firstErr error
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
