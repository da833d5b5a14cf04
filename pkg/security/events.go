package security

import (
	"log"
	"strings"
	"time"

	"github.com/gookit/color"
)

type EventType string

const (
	EventAccess     EventType = "access"
	EventError      EventType = "error"
	EventSuspicious EventType = "suspicious"
)

// Event is a write-only record of one request's disposition. It is handed to
// the sink and not retained in process.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Method    string         `json:"method"`
	URL       string         `json:"url"`
	UserAgent string         `json:"user_agent"`
	IPAddress string         `json:"ip_address"`
	UserID    int64          `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// EventSink receives security events. Production deployments swap in a real
// sink; development uses the console.
type EventSink interface {
	Write(event Event) error
}

// Alerter is invoked for error events and suspicious request patterns.
type Alerter interface {
	Alert(event Event)
}

// ConsoleSink prints events to the process log, coloring by severity.
type ConsoleSink struct{}

func (ConsoleSink) Write(event Event) error {
	line := string(event.Type) + " " + event.Method + " " + event.URL + " ip=" + event.IPAddress
	if event.SessionID != "" {
		line += " sid=" + event.SessionID
	}
	switch event.Type {
	case EventError:
		color.Red.Println("[SECURITY] " + line)
	case EventSuspicious:
		color.Yellow.Println("[SECURITY] " + line)
	default:
		log.Printf("[SECURITY] %s", line)
	}
	return nil
}

// LogAlerter is the development alerting collaborator.
type LogAlerter struct{}

func (LogAlerter) Alert(event Event) {
	color.Red.Printf("[ALERT] %s %s %s ip=%s details=%v\n",
		event.Type, event.Method, event.URL, event.IPAddress, event.Details)
}

// EventLogger records request outcomes. Sink and alerter failures are
// isolated so logging can never abort request handling.
type EventLogger struct {
	Sink    EventSink
	Alerter Alerter
}

func NewEventLogger(sink EventSink, alerter Alerter) *EventLogger {
	if sink == nil {
		sink = ConsoleSink{}
	}
	return &EventLogger{Sink: sink, Alerter: alerter}
}

func (l *EventLogger) Log(event Event, requestTarget string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("security event sink panic: %v", r)
		}
	}()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = l.Sink.Write(event)
	if l.Alerter != nil && (event.Type == EventError || SuspiciousRequest(requestTarget)) {
		l.Alerter.Alert(event)
	}
}

// SuspiciousRequest flags request targets carrying common attack markers:
// path traversal, inline script, SQL unions, command execution tokens.
func SuspiciousRequest(target string) bool {
	lower := strings.ToLower(target)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

var suspiciousPatterns = []string{
	"../", "..\\", ".env", "/etc/", "/proc/", "/sys/",
	"<script", "javascript:", "vbscript:",
	"union select", "drop table", "truncate", "delete from",
	";cat ", ";ls ", "&&", "|sh", "$(",
}
