package compiler

import (
	"context"
	"strings"

	"github.com/3-lines-studio/mimir/internal/types"
)

// fakeServices implements every collaborator port with overridable behavior.
// Defaults model a well-behaved external compiler.
type fakeServices struct {
	descriptor  types.Descriptor
	parseErrors []string
	parseErr    error

	scriptFn   func(req ScriptRequest) (ScriptResult, error)
	templateFn func(req TemplateRequest) (TemplateResult, error)
	styleFn    func(req StyleRequest) (StyleResult, error)

	rewriteRefs bool

	scriptCalls   []ScriptRequest
	templateCalls []TemplateRequest
	styleCalls    []StyleRequest
	stripCalls    int
}

func (f *fakeServices) Parse(_ context.Context, _, _ string, _ bool) (ParseResult, error) {
	if f.parseErr != nil {
		return ParseResult{}, f.parseErr
	}
	return ParseResult{Descriptor: f.descriptor, Errors: f.parseErrors}, nil
}

func (f *fakeServices) CompileScript(_ context.Context, req ScriptRequest) (ScriptResult, error) {
	f.scriptCalls = append(f.scriptCalls, req)
	if f.scriptFn != nil {
		return f.scriptFn(req)
	}
	return ScriptResult{
		Code:     "export default { name: 'Anon' }",
		Bindings: types.Bindings{"msg": "setup-ref"},
	}, nil
}

func (f *fakeServices) CompileTemplate(_ context.Context, req TemplateRequest) (TemplateResult, error) {
	f.templateCalls = append(f.templateCalls, req)
	if f.templateFn != nil {
		return f.templateFn(req)
	}
	return TemplateResult{Code: "\nexport function render(_ctx) { return null }"}, nil
}

func (f *fakeServices) CompileStyle(_ context.Context, req StyleRequest) (StyleResult, error) {
	f.styleCalls = append(f.styleCalls, req)
	if f.styleFn != nil {
		return f.styleFn(req)
	}
	return StyleResult{Code: ".fake { color: red }\n"}, nil
}

func (f *fakeServices) StripTypes(_ context.Context, code string) (string, error) {
	f.stripCalls++
	return strings.ReplaceAll(code, ": number", ""), nil
}

func (f *fakeServices) ShouldRewriteRefs(_ context.Context, _ string) (bool, error) {
	return f.rewriteRefs, nil
}

func (f *fakeServices) RewriteRefs(_ context.Context, code, _ string) (string, error) {
	return strings.ReplaceAll(code, "$ref(", "ref("), nil
}

func (f *fakeServices) RewriteDefault(_ context.Context, code, identifier string, _ bool) (string, error) {
	return strings.Replace(code, "export default", "const "+identifier+" =", 1), nil
}

func (f *fakeServices) collaborators() Collaborators {
	return Collaborators{
		Parser:   f,
		Script:   f,
		Template: f,
		Style:    f,
		Stripper: f,
		Refs:     f,
		Default:  f,
	}
}

func newTestPipeline(f *fakeServices, opts Options) *Pipeline {
	return NewPipeline(f.collaborators(), opts)
}
