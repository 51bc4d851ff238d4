package compiler

import (
	"context"
	"fmt"

	"github.com/3-lines-studio/mimir/internal/core"
	"github.com/3-lines-studio/mimir/internal/types"
)

// Pipeline compiles one virtual file at a time. It owns no state between
// calls; everything it produces lands in the file's artifact and the
// returned CompileResult. Calls must be serialized by the owner of the files.
type Pipeline struct {
	svc  Collaborators
	opts Options
}

func NewPipeline(svc Collaborators, opts Options) *Pipeline {
	return &Pipeline{svc: svc, opts: opts}
}

// Compile classifies the file and runs the matching path. It never returns a
// transport-level error: every failure becomes an entry in the result, and an
// aborted compile leaves the previous artifact untouched so the caller keeps
// serving the last good output.
func (p *Pipeline) Compile(ctx context.Context, file *types.VirtualFile) types.CompileResult {
	switch core.Classify(file.Filename, file.Source) {
	case core.KindBlank, core.KindInert:
		return types.Success()

	case core.KindStylesheet:
		file.Artifact.CSS = file.Source
		return types.Success()

	case core.KindScript:
		return p.compileScriptFile(ctx, file, false)

	case core.KindTypedScript:
		return p.compileScriptFile(ctx, file, true)

	default:
		return p.compileComponent(ctx, file)
	}
}

// compileScriptFile handles plain .js/.ts files: optional ref-sugar rewrite,
// optional type strip, import canonicalization. The same code serves both the
// client and SSR slots.
func (p *Pipeline) compileScriptFile(ctx context.Context, file *types.VirtualFile, typed bool) types.CompileResult {
	code := file.Source

	needsRefs, err := p.svc.Refs.ShouldRewriteRefs(ctx, code)
	if err != nil {
		return types.Failure(err.Error())
	}
	if needsRefs {
		code, err = p.svc.Refs.RewriteRefs(ctx, code, file.Filename)
		if err != nil {
			return types.Failure(err.Error())
		}
	}

	if typed {
		code, err = p.svc.Stripper.StripTypes(ctx, code)
		if err != nil {
			return types.Failure(err.Error())
		}
	}

	code = core.CanonicalizeImports(file.Filename, code)
	file.Artifact.JS = code
	file.Artifact.SSR = code
	return types.Success()
}

func (p *Pipeline) compileComponent(ctx context.Context, file *types.VirtualFile) types.CompileResult {
	parsed, err := p.svc.Parser.Parse(ctx, file.Source, file.Filename, true)
	if err != nil {
		return types.Failure(err.Error())
	}
	if len(parsed.Errors) > 0 {
		return types.Failure(parsed.Errors...)
	}
	descr := &parsed.Descriptor

	if descr.Template != nil && descr.Template.Lang != "" {
		return types.Failure(preprocessorError(descr.Template.Lang))
	}
	for _, block := range descr.Styles {
		if block.Lang != "" {
			return types.Failure(preprocessorError(block.Lang))
		}
	}

	scriptLang := ""
	if descr.Script != nil {
		scriptLang = descr.Script.Lang
	}
	if descr.ScriptSetup != nil && descr.ScriptSetup.Lang != "" {
		scriptLang = descr.ScriptSetup.Lang
	}
	typed := scriptLang == "ts"
	if scriptLang != "" && !typed {
		return types.Failure(`only lang="ts" is supported for <script> blocks`)
	}

	scopeID := core.ScopeID(file.Filename)
	out := &outputBuilder{}

	clientScript, bindings, err := p.compileScriptSection(ctx, file, descr, scopeID, false, typed)
	if err != nil {
		return types.Failure(err.Error())
	}
	out.appendClient(clientScript)

	if descr.ScriptSetup != nil {
		// The inlined render function differs in SSR mode, so the script has
		// to be compiled a second time. A failure here only costs the SSR
		// variant, never the whole file.
		ssrScript, _, err := p.compileScriptSection(ctx, file, descr, scopeID, true, typed)
		if err != nil {
			out.degradeSSR(core.DegradedSSRComment(err.Error()))
		} else {
			out.appendSSR(ssrScript)
		}
	} else {
		out.appendSSR(clientScript)
	}

	if descr.Template != nil && (descr.ScriptSetup == nil || !p.opts.Script.inlineTemplate()) {
		clientTpl, err := p.compileTemplateSection(ctx, file, descr, scopeID, bindings, false, typed)
		if err != nil {
			return types.Failure(err.Error())
		}
		out.appendClient(clientTpl)

		ssrTpl, err := p.compileTemplateSection(ctx, file, descr, scopeID, bindings, true, typed)
		if err != nil {
			out.degradeSSR(core.DegradedSSRComment(err.Error()))
		} else {
			out.appendSSR(ssrTpl)
		}
	}

	if descr.HasScopedStyle() {
		out.appendShared(scopeIDStatement(scopeID))
	}

	if out.hasCode() {
		out.appendShared(filenameStatement(file.Filename))
		out.appendShared(defaultExportStatement())
	}

	// The SSR variant is executed server-side, never loaded as a browser
	// module, so only the client code gets its imports canonicalized.
	js := core.CanonicalizeImports(file.Filename, out.clientCode())
	ssr := out.ssrCode()

	css, softErrs, err := p.compileStyleSections(ctx, file, descr, scopeID)
	if err != nil {
		return types.Failure(err.Error())
	}

	if out.hasCode() {
		file.Artifact.JS = js
		file.Artifact.SSR = ssr
	}
	file.Artifact.CSS = css

	return types.CompileResult{Errors: softErrs}
}

func preprocessorError(lang string) string {
	return fmt.Sprintf("lang=%q pre-processors for <template> or <style> are not supported in the playground", lang)
}
