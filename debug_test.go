package quill

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugCheckDisposed_Message(t *testing.T) {
	tf := NewTextField("title", "x")
	tf.Dispose()
	defer func() {
		msg := fmt.Sprint(recover())
		if !strings.Contains(msg, "AddField") || !strings.Contains(msg, `"title"`) {
			t.Errorf("panic message = %q", msg)
		}
	}()
	debugCheckDisposed(tf, "AddField")
}

func TestDebugCheckDisposed_LiveField(t *testing.T) {
	debugCheckDisposed(NewTextField("ok", ""), "AddField")
}

func TestDebugMode_Off(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	s, _ := newTestStage()
	s.debugLog(frameStats{fieldCount: 3})
	if buf.Len() != 0 {
		t.Errorf("debugLog wrote without debug mode: %q", buf.String())
	}

	// Disposed fields are silently pruned instead.
	tf := NewTextField("f", "")
	tf.Dispose()
	s.AddField(tf)
	s.Prepare()
	if len(s.Fields()) != 0 {
		t.Error("disposed field should be pruned")
	}
}

func TestDebugMode_FieldCountWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	s, _ := newTestStage()
	s.SetDebugMode(true)
	for i := 0; i <= debugMaxFieldCount; i++ {
		s.AddField(NewTextField("", ""))
	}
	out := buf.String()
	if strings.Count(out, "exceeds threshold") != 1 {
		t.Errorf("expected one warning, log: %q", out)
	}
	if !strings.Contains(out, fmt.Sprintf("fields=%d", debugMaxFieldCount+1)) {
		t.Errorf("warning missing field count: %q", out)
	}
}
