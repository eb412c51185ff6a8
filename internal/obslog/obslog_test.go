package obslog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelThresholdSuppressesLowerSeverity(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Info("should not appear")
	l.Debug("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below threshold, got %q", buf.String())
	}

	l.Warn("this should appear")
	if !strings.Contains(buf.String(), "this should appear") {
		t.Errorf("expected Warn output, got %q", buf.String())
	}
}

func TestInfowFormatsKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.Infow("trial recorded", "iteration", 3, "stage", "generate", "score", 0.75)

	got := buf.String()
	for _, want := range []string{"trial recorded", "iteration=3", "stage=generate", "score=0.75"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestInfowOddKVListMarksBadKey(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.Infow("incomplete", "onlykey")

	if !strings.Contains(buf.String(), "onlykey=!BADKEY") {
		t.Errorf("expected !BADKEY marker, got %q", buf.String())
	}
}

func TestDefaultAndSetDefaultRoundTrip(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)
	SetDefault(l)

	Infow("via package func", "k", "v")
	if !strings.Contains(buf.String(), "via package func") {
		t.Errorf("expected package-level Infow to use the new default, got %q", buf.String())
	}
}

func TestLevelStringNames(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
