package compiler

import (
	"fmt"
	"strings"
)

// compIdentifier is the shared identifier every fragment attaches to; the
// default-export rewriter rebinds the component object to it and later steps
// hang the render function, scope id, and filename off of it.
const compIdentifier = "__sfc__"

// outputBuilder accumulates the client and SSR variants of one compile as
// explicit fragment lists, so the "skip SSR" and "degrade SSR" branches are
// visible operations instead of string-append side effects.
type outputBuilder struct {
	client []string
	ssr    []string
}

func (b *outputBuilder) appendClient(frag string) {
	b.client = append(b.client, frag)
}

func (b *outputBuilder) appendSSR(frag string) {
	b.ssr = append(b.ssr, frag)
}

// appendShared adds a fragment to both variants, including a degraded SSR
// variant: metadata statements still follow the degrade comment.
func (b *outputBuilder) appendShared(frag string) {
	b.appendClient(frag)
	b.appendSSR(frag)
}

// degradeSSR discards everything accumulated for the SSR variant and replaces
// it with the given comment.
func (b *outputBuilder) degradeSSR(comment string) {
	b.ssr = []string{comment}
}

func (b *outputBuilder) hasCode() bool {
	return len(b.client) > 0 || len(b.ssr) > 0
}

func (b *outputBuilder) clientCode() string {
	return strings.TrimLeft(strings.Join(b.client, "\n"), "\n")
}

func (b *outputBuilder) ssrCode() string {
	return strings.TrimLeft(strings.Join(b.ssr, "\n"), "\n")
}

func scopeIDStatement(scopeID string) string {
	return fmt.Sprintf("%s.__scopeId = %q", compIdentifier, scopeID)
}

func filenameStatement(filename string) string {
	return fmt.Sprintf("%s.__file = %q", compIdentifier, filename)
}

func defaultExportStatement() string {
	return "export default " + compIdentifier
}
