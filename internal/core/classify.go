package core

import "strings"

type FileKind int

const (
	KindInert FileKind = iota
	KindBlank
	KindStylesheet
	KindScript
	KindTypedScript
	KindComponent
)

const (
	SuffixStylesheet  = ".css"
	SuffixScript      = ".js"
	SuffixTypedScript = ".ts"
	SuffixComponent   = ".vue"
)

// Classify decides how one virtual file is handled. Blank source wins over
// the suffix: an empty editor buffer is a valid state, not a compile target.
func Classify(filename, source string) FileKind {
	if strings.TrimSpace(source) == "" {
		return KindBlank
	}

	switch {
	case strings.HasSuffix(filename, SuffixStylesheet):
		return KindStylesheet
	case strings.HasSuffix(filename, SuffixScript):
		return KindScript
	case strings.HasSuffix(filename, SuffixTypedScript):
		return KindTypedScript
	case strings.HasSuffix(filename, SuffixComponent):
		return KindComponent
	default:
		return KindInert
	}
}
