package ctxlog

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("FromContext returned nil")
	}
	// Must not panic.
	logger.Info("discarded")
}

func TestWithLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, true))

	FromContext(ctx).Debug("running command", "cmd", "npm init --yes")

	if !strings.Contains(buf.String(), "npm init --yes") {
		t.Errorf("log output missing command: %q", buf.String())
	}
}

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("progress")
	if buf.Len() != 0 {
		t.Errorf("info should be suppressed without verbose, got %q", buf.String())
	}
}
