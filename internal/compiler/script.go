package compiler

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/3-lines-studio/mimir/internal/core"
	"github.com/3-lines-studio/mimir/internal/types"
)

// compileScriptSection produces one variant (client or SSR) of the component
// script. A component without script sections is valid and compiles to an
// empty component object.
func (p *Pipeline) compileScriptSection(ctx context.Context, file *types.VirtualFile, descr *types.Descriptor, scopeID string, ssr, typed bool) (string, types.Bindings, error) {
	if descr.Script == nil && descr.ScriptSetup == nil {
		return "\nconst " + compIdentifier + " = {}", nil, nil
	}

	req := ScriptRequest{
		Source:          file.Source,
		Filename:        file.Filename,
		ID:              scopeID,
		SSR:             ssr,
		InlineTemplate:  p.opts.Script.inlineTemplate(),
		SSRCssVars:      p.opts.Script.ssrCssVars(),
		CompilerOptions: p.opts.Script.Compiler,
	}

	result, err := p.svc.Script.CompileScript(ctx, req)
	if err != nil {
		return "", nil, fmt.Errorf("%s", core.TruncateDiagnostic(err.Error()))
	}

	code := bindingsDump(result.Bindings)

	rewritten, err := p.svc.Default.RewriteDefault(ctx, result.Code, compIdentifier, typed)
	if err != nil {
		return "", nil, fmt.Errorf("rewrite default export: %w", err)
	}
	code += rewritten

	if typed {
		code, err = p.svc.Stripper.StripTypes(ctx, code)
		if err != nil {
			return "", nil, fmt.Errorf("strip types: %w", err)
		}
	}

	return code, result.Bindings, nil
}

// bindingsDump renders the resolved bindings as a leading comment. Purely a
// diagnostic aid for people reading the compiled output.
func bindingsDump(bindings types.Bindings) string {
	if len(bindings) == 0 {
		return ""
	}
	dump, err := json.MarshalIndent(bindings, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\n/* Analyzed bindings: %s */\n", dump)
}
