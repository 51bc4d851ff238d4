package core

import (
	"strings"
	"testing"
)

func TestTruncateDiagnostic(t *testing.T) {
	short := "SyntaxError: unexpected token\n  at parse"
	if got := TruncateDiagnostic(short); got != short {
		t.Errorf("short diagnostic was modified: %q", got)
	}

	long := strings.Repeat("frame\n", 30)
	got := TruncateDiagnostic(long)
	if n := len(strings.Split(got, "\n")); n != MaxDiagnosticLines {
		t.Errorf("expected %d lines, got %d", MaxDiagnosticLines, n)
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncated diagnostic is not a prefix of the original")
	}
}

func TestDegradedSSRComment(t *testing.T) {
	got := DegradedSSRComment("boom: bad template\n  at compile\n  at run")
	want := "/* SSR compile error: boom: bad template */"
	if got != want {
		t.Errorf("DegradedSSRComment = %q, want %q", got, want)
	}
}
