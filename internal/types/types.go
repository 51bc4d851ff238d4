package types

// VirtualFile is one entry in the playground's flat virtual filesystem.
// Filename is a slash-separated virtual path; there is no filesystem backing.
type VirtualFile struct {
	Filename string
	Source   string
	Artifact CompiledArtifact
}

// CompiledArtifact holds the three output slots of a compile. The slots are
// independent: a stage that is skipped leaves its slot at the previous value.
type CompiledArtifact struct {
	JS  string
	SSR string
	CSS string
}

// Descriptor is the parsed structure of a single-file component, produced by
// the external parser. Read-only to the pipeline.
type Descriptor struct {
	Script      *ScriptBlock
	ScriptSetup *ScriptBlock
	Template    *TemplateBlock
	Styles      []StyleBlock
}

type ScriptBlock struct {
	Content string
	Lang    string
	Setup   bool
}

type TemplateBlock struct {
	Content string
	Lang    string
}

type StyleBlock struct {
	Content string
	Lang    string
	Scoped  bool
	Module  bool
}

// HasScopedStyle reports whether any style block is scoped, which decides
// whether a scope id is attached to the compiled component.
func (d *Descriptor) HasScopedStyle() bool {
	for _, s := range d.Styles {
		if s.Scoped {
			return true
		}
	}
	return false
}

// Bindings maps template-referenced identifiers to their binding kind, as
// reported by the script compiler. Opaque to the pipeline; passed through to
// template compilation.
type Bindings map[string]string

// CompileResult is the per-call outcome of compiling one virtual file.
// Empty Errors means success; a non-empty list means the artifact was left
// untouched (abort) or degraded as described by the entries.
type CompileResult struct {
	Errors []string
}

func (r CompileResult) OK() bool {
	return len(r.Errors) == 0
}

func Failure(errs ...string) CompileResult {
	return CompileResult{Errors: errs}
}

func Success() CompileResult {
	return CompileResult{}
}
