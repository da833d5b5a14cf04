package security

import "testing"

func TestSuspiciousRequestPatterns(t *testing.T) {
	suspicious := []string{
		"/files?path=../../etc/passwd",
		"/.env",
		"/search?q=<script>alert(1)</script>",
		"/items?id=1 UNION SELECT password FROM users",
		"/run?cmd=a&&b",
	}
	for _, target := range suspicious {
		if !SuspiciousRequest(target) {
			t.Fatalf("%q should be flagged", target)
		}
	}

	benign := []string{"/races", "/horses/42", "/login?error=invalid"}
	for _, target := range benign {
		if SuspiciousRequest(target) {
			t.Fatalf("%q should not be flagged", target)
		}
	}
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Write(event Event) error {
	s.events = append(s.events, event)
	return nil
}

type panicSink struct{}

func (panicSink) Write(Event) error { panic("sink down") }

func TestEventLoggerSurvivesSinkPanic(t *testing.T) {
	logger := NewEventLogger(panicSink{}, nil)
	logger.Log(Event{Type: EventAccess}, "/races")
}

type recordingAlerter struct {
	alerts []Event
}

func (a *recordingAlerter) Alert(event Event) {
	a.alerts = append(a.alerts, event)
}

func TestEventLoggerAlertsOnErrors(t *testing.T) {
	sink := &recordingSink{}
	alerter := &recordingAlerter{}
	logger := NewEventLogger(sink, alerter)

	logger.Log(Event{Type: EventAccess}, "/races")
	logger.Log(Event{Type: EventError}, "/races")
	logger.Log(Event{Type: EventAccess}, "/x?q=<script>")

	if len(sink.events) != 3 {
		t.Fatalf("sink got %d events, want 3", len(sink.events))
	}
	if len(alerter.alerts) != 2 {
		t.Fatalf("alerter got %d alerts, want 2 (error + suspicious target)", len(alerter.alerts))
	}
}

func TestEventLoggerStampsTime(t *testing.T) {
	sink := &recordingSink{}
	logger := NewEventLogger(sink, nil)
	logger.Log(Event{Type: EventAccess}, "/")
	if sink.events[0].Timestamp.IsZero() {
		t.Fatal("event timestamp should be set")
	}
}
