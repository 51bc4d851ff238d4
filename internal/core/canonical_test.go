package core

import (
	"testing"
)

func TestCanonicalizeImports(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		code     string
		want     string
	}{
		{
			name:     "root-level file is untouched",
			filename: "App.vue",
			code:     `import x from '../anything'`,
			want:     `import x from '../anything'`,
		},
		{
			name:     "sibling import gains directory prefix",
			filename: "a/b/c.vue",
			code:     `import d from './d'`,
			want:     `import d from './a/b/d'`,
		},
		{
			name:     "single parent traversal",
			filename: "a/b/c.vue",
			code:     `import d from '../d'`,
			want:     `import d from './a/d'`,
		},
		{
			name:     "double parent traversal reaches root",
			filename: "a/b/c.vue",
			code:     `import d from '../../d'`,
			want:     `import d from './d'`,
		},
		{
			name:     "bare specifier passes through",
			filename: "a/b/c.vue",
			code:     `import { ref } from 'vue'`,
			want:     `import { ref } from 'vue'`,
		},
		{
			name:     "absolute specifier passes through",
			filename: "a/b/c.vue",
			code:     `import x from '/srv/x.js'`,
			want:     `import x from '/srv/x.js'`,
		},
		{
			name:     "side-effect import is rewritten",
			filename: "pages/home.vue",
			code:     `import './setup.js'`,
			want:     `import './pages/setup.js'`,
		},
		{
			name:     "multiple imports rewritten independently",
			filename: "a/b/c.vue",
			code: `import d from './d'
import e from '../e'
import { f } from 'vue'`,
			want: `import d from './a/b/d'
import e from './a/e'
import { f } from 'vue'`,
		},
		{
			name:     "double-quoted specifier",
			filename: "a/b/c.vue",
			code:     `import d from "./d"`,
			want:     `import d from "./a/b/d"`,
		},
		{
			name:     "specifier text elsewhere in code is left alone",
			filename: "a/b/c.vue",
			code: `import d from './d'
const msg = "see ./d for details"`,
			want: `import d from './a/b/d'
const msg = "see ./d for details"`,
		},
		{
			name:     "no imports at all",
			filename: "a/b/c.vue",
			code:     `const x = 1`,
			want:     `const x = 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalizeImports(tt.filename, tt.code)
			if got != tt.want {
				t.Errorf("CanonicalizeImports(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeImportsIdempotent(t *testing.T) {
	inputs := []string{
		`import d from './d'`,
		`import d from '../d'`,
		`import d from './d'
import e from '../e'
import { f } from 'vue'`,
	}

	for _, code := range inputs {
		once := CanonicalizeImports("a/b/c.vue", code)
		twice := CanonicalizeImports("a/b/c.vue", once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", code, once, twice)
		}
	}
}
