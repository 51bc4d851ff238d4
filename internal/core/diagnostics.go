package core

import "strings"

// MaxDiagnosticLines caps how much of a compiler stack trace is surfaced to
// the editor; anything past the leading frames is noise in a playground.
const MaxDiagnosticLines = 12

// NoStylesPlaceholder fills the CSS slot when a component declares no style
// blocks, so the editor can distinguish "no styles" from "not yet compiled".
const NoStylesPlaceholder = "/* No <style> tags present */"

// TruncateDiagnostic keeps the first MaxDiagnosticLines lines of a compiler
// diagnostic.
func TruncateDiagnostic(msg string) string {
	lines := strings.Split(msg, "\n")
	if len(lines) <= MaxDiagnosticLines {
		return msg
	}
	return strings.Join(lines[:MaxDiagnosticLines], "\n")
}

// DegradedSSRComment is the stand-in SSR module body used when the SSR
// variant fails to compile but the client variant succeeded.
func DegradedSSRComment(msg string) string {
	return "/* SSR compile error: " + FirstLine(msg) + " */"
}

func FirstLine(msg string) string {
	if i := strings.Index(msg, "\n"); i >= 0 {
		return msg[:i]
	}
	return msg
}
