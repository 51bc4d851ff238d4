package cliout

import (
	"fmt"
	"os"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

const (
	GlyphCheck   = "✓"
	GlyphCross   = "✗"
	GlyphWarning = "⚠"
)

func PrintHeader(msg string) {
	fmt.Printf("\n%s%s%s\n\n", ColorBold, msg, ColorReset)
}

func PrintStep(msg string, args ...any) {
	fmt.Printf("%s→%s %s\n", ColorCyan, ColorReset, fmt.Sprintf(msg, args...))
}

func PrintSuccess(msg string, args ...any) {
	fmt.Printf("%s%s%s %s\n", ColorGreen, GlyphCheck, ColorReset, fmt.Sprintf(msg, args...))
}

func PrintWarning(msg string, args ...any) {
	fmt.Printf("%s%s%s %s\n", ColorYellow, GlyphWarning, ColorReset, fmt.Sprintf(msg, args...))
}

func PrintError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s%s%s %s\n", ColorRed, GlyphCross, ColorReset, fmt.Sprintf(msg, args...))
}

func PrintFile(path string) {
	fmt.Printf("  %s%s%s\n", ColorGray, path, ColorReset)
}
