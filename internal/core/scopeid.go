package core

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// ScopeID derives the scoped-style identifier for a component from its
// virtual filename. Stable for a given filename, short enough for selector
// attributes, and collision-tolerant for playground purposes.
func ScopeID(filename string) string {
	return fmt.Sprintf("data-v-%08x", uint32(xxh3.HashString(filename)))
}
