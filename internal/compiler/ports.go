package compiler

import (
	"context"

	"github.com/3-lines-studio/mimir/internal/types"
)

// The pipeline never runs a compiler itself; every transformation is done by
// an external service reached through these ports. All of them are blocking
// and honor ctx cancellation at the transport level.

type ParseResult struct {
	Descriptor types.Descriptor
	Errors     []string
}

type SFCParser interface {
	Parse(ctx context.Context, source, filename string, sourceMap bool) (ParseResult, error)
}

type ScriptRequest struct {
	Source          string
	Filename        string
	ID              string
	SSR             bool
	InlineTemplate  bool
	SSRCssVars      []string
	CompilerOptions map[string]any
}

type ScriptResult struct {
	Code     string
	Bindings types.Bindings
}

type ScriptCompiler interface {
	CompileScript(ctx context.Context, req ScriptRequest) (ScriptResult, error)
}

type TemplateRequest struct {
	Source          string
	Filename        string
	ID              string
	SSR             bool
	Scoped          bool
	TS              bool
	Bindings        types.Bindings
	CompilerOptions map[string]any
}

type TemplateResult struct {
	Code   string
	Errors []string
}

type TemplateCompiler interface {
	CompileTemplate(ctx context.Context, req TemplateRequest) (TemplateResult, error)
}

type StyleRequest struct {
	Source          string
	Filename        string
	ID              string
	Scoped          bool
	CompilerOptions map[string]any
}

type StyleResult struct {
	Code   string
	Errors []string
}

type StyleCompiler interface {
	CompileStyle(ctx context.Context, req StyleRequest) (StyleResult, error)
}

type TypeStripper interface {
	StripTypes(ctx context.Context, code string) (string, error)
}

type RefRewriter interface {
	ShouldRewriteRefs(ctx context.Context, code string) (bool, error)
	RewriteRefs(ctx context.Context, code, filename string) (string, error)
}

// DefaultRewriter rebinds a module's default export to the given identifier
// so further statements can attach metadata to it.
type DefaultRewriter interface {
	RewriteDefault(ctx context.Context, code, identifier string, typed bool) (string, error)
}

// Collaborators bundles every external service the pipeline depends on.
type Collaborators struct {
	Parser   SFCParser
	Script   ScriptCompiler
	Template TemplateCompiler
	Style    StyleCompiler
	Stripper TypeStripper
	Refs     RefRewriter
	Default  DefaultRewriter
}
