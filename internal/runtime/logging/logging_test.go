package logging

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
)

type recordedLine struct {
	level  string
	msg    string
	err    error
	fields watermill.LogFields
}

type recordingWatermillLogger struct {
	entries *[]recordedLine
	with    watermill.LogFields
}

func newRecordingWatermillLogger() *recordingWatermillLogger {
	return &recordingWatermillLogger{entries: &[]recordedLine{}}
}

func (r *recordingWatermillLogger) lines() []recordedLine {
	return *r.entries
}

func (r *recordingWatermillLogger) record(level, msg string, err error, fields watermill.LogFields) {
	merged := watermill.LogFields{}
	for k, v := range r.with {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	*r.entries = append(*r.entries, recordedLine{level: level, msg: msg, err: err, fields: merged})
}

func (r *recordingWatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	r.record("error", msg, err, fields)
}

func (r *recordingWatermillLogger) Info(msg string, fields watermill.LogFields) {
	r.record("info", msg, nil, fields)
}

func (r *recordingWatermillLogger) Debug(msg string, fields watermill.LogFields) {
	r.record("debug", msg, nil, fields)
}

func (r *recordingWatermillLogger) Trace(msg string, fields watermill.LogFields) {
	r.record("trace", msg, nil, fields)
}

func (r *recordingWatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	merged := watermill.LogFields{}
	for k, v := range r.with {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingWatermillLogger{entries: r.entries, with: merged}
}

func TestWatermillServiceLoggerDelegates(t *testing.T) {
	base := newRecordingWatermillLogger()
	logger := NewWatermillServiceLogger(base)

	logger.Debug("dbg", LogFields{"component": "registry"})
	logger.Info("info", nil)
	logger.Trace("trace", LogFields{"trace": true})

	boom := errors.New("boom")
	logger.Error("oops", boom, LogFields{"failed": true})

	if len(base.lines()) != 4 {
		t.Fatalf("expected 4 log entries, got %d", len(base.lines()))
	}
	if base.lines()[0].level != "debug" || base.lines()[0].fields["component"] != "registry" {
		t.Fatalf("unexpected first entry: %#v", base.lines()[0])
	}
	if base.lines()[3].level != "error" || base.lines()[3].err != boom {
		t.Fatalf("unexpected error entry: %#v", base.lines()[3])
	}
}

func TestWatermillServiceLoggerPanicsOnNilLogger(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when logger nil")
		}
	}()
	NewWatermillServiceLogger(nil)
}

func TestSlogLoggerPanicsOnNil(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when slog logger nil")
		}
	}()
	NewSlogServiceLogger(nil)
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := Nop()
	logger.Info("ignored", LogFields{"k": "v"})
	logger.Error("ignored", errors.New("boom"), nil)
	logger.With(LogFields{"k": "v"}).Debug("ignored", nil)
}

func TestWatermillAdapterRoundTrip(t *testing.T) {
	base := newRecordingWatermillLogger()
	adapter := NewWatermillAdapter(NewWatermillServiceLogger(base))

	adapter.Info("through", watermill.LogFields{"hop": "two"})
	child := adapter.With(watermill.LogFields{"scoped": "yes"})
	child.Debug("scoped_debug", nil)

	if len(base.lines()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(base.lines()))
	}
	if base.lines()[0].fields["hop"] != "two" {
		t.Fatalf("expected fields to survive the round trip, got %#v", base.lines()[0].fields)
	}
	if base.lines()[1].fields["scoped"] != "yes" {
		t.Fatalf("expected With fields to propagate, got %#v", base.lines()[1].fields)
	}
}

func TestWatermillAdapterPanicsOnNil(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when service logger nil")
		}
	}()
	NewWatermillAdapter(nil)
}
