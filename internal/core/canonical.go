package core

import (
	"regexp"
	"strings"
)

// importSpecifierRe matches static ES import statements and captures the
// quoted specifier. Covers both `import x from './a'` and bare side-effect
// imports `import './a'`.
var importSpecifierRe = regexp.MustCompile(`import\s*(?:[\w*{}\n\r\t, $]+\s*from\s*)?['"]([^'"]+)['"]`)

// CanonicalizeImports rewrites relative import specifiers in code so the
// module stays resolvable when stored in a flat virtual namespace keyed by
// full path. A module compiled from "a/b/c.vue" importing "./d" must end up
// importing "./a/b/d", because the importing module itself is served from the
// namespace root.
//
// Files at the virtual root need no rewriting: their relative imports are
// already unambiguous.
//
// Replacement is span-based: only the matched specifier text is rewritten,
// never other occurrences of the same substring elsewhere in the code.
func CanonicalizeImports(filename, code string) string {
	if !strings.Contains(filename, "/") {
		return code
	}

	currentDir := filename[:strings.LastIndex(filename, "/")]

	matches := importSpecifierRe.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code
	}

	var out strings.Builder
	out.Grow(len(code))
	prev := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		spec := code[start:end]
		if !strings.HasPrefix(spec, ".") {
			continue
		}

		out.WriteString(code[prev:start])
		out.WriteString(resolveRelative(currentDir, spec))
		prev = end
	}
	out.WriteString(code[prev:])
	return out.String()
}

// resolveRelative turns a specifier relative to dir into a root-relative
// "./full/path" specifier. Specifiers that already carry the directory prefix
// are returned unchanged, so canonicalization is idempotent.
func resolveRelative(dir, spec string) string {
	if strings.HasPrefix(spec, "..") {
		rest := spec
		for strings.HasPrefix(rest, "..") {
			rest = strings.TrimPrefix(rest, "..")
			rest = strings.TrimPrefix(rest, "/")
			if i := strings.LastIndex(dir, "/"); i >= 0 {
				dir = dir[:i]
			} else {
				dir = ""
			}
		}
		return "./" + joinVirtual(dir, rest)
	}

	rest := strings.TrimPrefix(spec, "./")
	if firstSegment(rest) == firstSegment(dir) {
		// Already canonical: the specifier is rooted in the same top-level
		// directory as the importing file, which only a prior
		// canonicalization pass produces.
		return spec
	}
	return "./" + joinVirtual(dir, rest)
}

func firstSegment(p string) string {
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i]
	}
	return p
}

func joinVirtual(dir, rest string) string {
	if dir == "" {
		return rest
	}
	if rest == "" {
		return dir
	}
	return dir + "/" + rest
}
