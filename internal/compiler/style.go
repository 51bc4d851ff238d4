package compiler

import (
	"context"
	"errors"
	"strings"

	"github.com/3-lines-studio/mimir/internal/core"
	"github.com/3-lines-studio/mimir/internal/types"
)

// The style service runs on a browser-targeted bundle of the CSS compiler;
// plugins that reach for pathToFileURL fail there even though the stylesheet
// itself is fine. Those failures are environment noise, not user errors.
const pathResolutionErrPattern = "pathToFileURL"

var errStyleModuleUnsupported = errors.New("<style module> is not supported in the playground")

// compileStyleSections compiles every style block independently and
// aggregates the survivors in declaration order. Per-block failures are
// tolerated and reported; only module-flagged blocks are fatal.
func (p *Pipeline) compileStyleSections(ctx context.Context, file *types.VirtualFile, descr *types.Descriptor, scopeID string) (string, []string, error) {
	var parts []string
	var softErrs []string

	for _, block := range descr.Styles {
		if block.Module {
			return "", nil, errStyleModuleUnsupported
		}

		req := StyleRequest{
			Source:          block.Content,
			Filename:        file.Filename,
			ID:              scopeID,
			Scoped:          block.Scoped,
			CompilerOptions: p.opts.Style.Compiler,
		}

		result, err := p.svc.Style.CompileStyle(ctx, req)
		if err != nil {
			if !strings.Contains(err.Error(), pathResolutionErrPattern) {
				softErrs = append(softErrs, err.Error())
			}
			continue
		}
		if len(result.Errors) > 0 {
			if !strings.Contains(result.Errors[0], pathResolutionErrPattern) {
				softErrs = append(softErrs, result.Errors...)
			}
			continue
		}

		parts = append(parts, strings.TrimSpace(result.Code))
	}

	css := strings.TrimSpace(strings.Join(parts, "\n"))
	if css == "" {
		css = core.NoStylesPlaceholder
	}
	return css, softErrs, nil
}
