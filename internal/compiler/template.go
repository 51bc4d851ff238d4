package compiler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/3-lines-studio/mimir/internal/types"
)

// renderEntryRe locates the render entry point the template compiler emits
// so it can be renamed and attached to the component object.
var renderEntryRe = regexp.MustCompile(`\nexport (function|const) (render|ssrRender)`)

// compileTemplateSection compiles the template block into one render-function
// variant and rewires its entry point onto the component object.
func (p *Pipeline) compileTemplateSection(ctx context.Context, file *types.VirtualFile, descr *types.Descriptor, scopeID string, bindings types.Bindings, ssr, typed bool) (string, error) {
	req := TemplateRequest{
		Source:          descr.Template.Content,
		Filename:        file.Filename,
		ID:              scopeID,
		SSR:             ssr,
		Scoped:          descr.HasScopedStyle(),
		TS:              typed,
		Bindings:        bindings,
		CompilerOptions: p.opts.Template.Compiler,
	}

	result, err := p.svc.Template.CompileTemplate(ctx, req)
	if err != nil {
		return "", err
	}
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("%s", strings.Join(result.Errors, "\n"))
	}

	fnName := "render"
	if ssr {
		fnName = "ssrRender"
	}

	code := renderEntryRe.ReplaceAllString(result.Code, fmt.Sprintf("\n$1 %s", fnName))
	code += fmt.Sprintf("\n%s.%s = %s", compIdentifier, fnName, fnName)

	if typed {
		code, err = p.svc.Stripper.StripTypes(ctx, code)
		if err != nil {
			return "", fmt.Errorf("strip types: %w", err)
		}
	}

	return code, nil
}
