package mimir

import (
	"context"
	"testing"

	"github.com/3-lines-studio/mimir/internal/compiler"
)

type stubServices struct {
	parseErrors []string
}

func (s *stubServices) Parse(context.Context, string, string, bool) (compiler.ParseResult, error) {
	return compiler.ParseResult{Errors: s.parseErrors}, nil
}

func (s *stubServices) CompileScript(context.Context, compiler.ScriptRequest) (compiler.ScriptResult, error) {
	return compiler.ScriptResult{Code: "export default {}"}, nil
}

func (s *stubServices) CompileTemplate(context.Context, compiler.TemplateRequest) (compiler.TemplateResult, error) {
	return compiler.TemplateResult{Code: "\nexport function render() {}"}, nil
}

func (s *stubServices) CompileStyle(context.Context, compiler.StyleRequest) (compiler.StyleResult, error) {
	return compiler.StyleResult{Code: ".a {}"}, nil
}

func (s *stubServices) StripTypes(_ context.Context, code string) (string, error) {
	return code, nil
}

func (s *stubServices) ShouldRewriteRefs(context.Context, string) (bool, error) {
	return false, nil
}

func (s *stubServices) RewriteRefs(_ context.Context, code, _ string) (string, error) {
	return code, nil
}

func (s *stubServices) RewriteDefault(_ context.Context, code, identifier string, _ bool) (string, error) {
	return code, nil
}

func newTestStore(t *testing.T, stub *stubServices) *Store {
	t.Helper()
	store, err := New(WithCollaborators(compiler.Collaborators{
		Parser:   stub,
		Script:   stub,
		Template: stub,
		Style:    stub,
		Stripper: stub,
		Refs:     stub,
		Default:  stub,
	}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return store
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t, &stubServices{})
	store.AddFile("App.vue", "<template/>")
	store.AddFile("util.js", "export const x = 1")
	store.AddFile("App.vue", "<template><div/></template>")

	files := store.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0] != "App.vue" || files[1] != "util.js" {
		t.Errorf("unexpected order: %v", files)
	}
}

func TestCompileUnknownFile(t *testing.T) {
	store := newTestStore(t, &stubServices{})

	result := store.Compile(context.Background(), "missing.vue")
	if result.OK() {
		t.Error("expected failure for unknown file")
	}
}

func TestCompileStylesheet(t *testing.T) {
	store := newTestStore(t, &stubServices{})
	store.AddFile("theme.css", "body { margin: 0 }")

	result := store.Compile(context.Background(), "theme.css")
	if !result.OK() {
		t.Fatalf("compile failed: %v", result.Errors)
	}

	artifact, ok := store.Artifact("theme.css")
	if !ok {
		t.Fatal("artifact missing")
	}
	if artifact.CSS != "body { margin: 0 }" {
		t.Errorf("unexpected CSS: %q", artifact.CSS)
	}
}

func TestErrorsTrackedPerFile(t *testing.T) {
	stub := &stubServices{parseErrors: []string{"bad template"}}
	store := newTestStore(t, stub)
	store.AddFile("App.vue", "<template>")

	result := store.Compile(context.Background(), "App.vue")
	if result.OK() {
		t.Fatal("expected parse failure")
	}
	if errs := store.Errors("App.vue"); len(errs) != 1 || errs[0] != "bad template" {
		t.Errorf("unexpected recorded errors: %v", errs)
	}

	// A later successful compile clears the recorded errors.
	stub.parseErrors = nil
	if result := store.Compile(context.Background(), "App.vue"); !result.OK() {
		t.Fatalf("expected success, got %v", result.Errors)
	}
	if errs := store.Errors("App.vue"); len(errs) != 0 {
		t.Errorf("errors not cleared: %v", errs)
	}
}

func TestAbortKeepsStaleArtifact(t *testing.T) {
	stub := &stubServices{}
	store := newTestStore(t, stub)
	store.AddFile("App.vue", "<template><div/></template>")

	if result := store.Compile(context.Background(), "App.vue"); !result.OK() {
		t.Fatalf("initial compile failed: %v", result.Errors)
	}
	before, _ := store.Artifact("App.vue")

	stub.parseErrors = []string{"broken"}
	store.AddFile("App.vue", "<template>")
	if result := store.Compile(context.Background(), "App.vue"); result.OK() {
		t.Fatal("expected failure")
	}

	after, _ := store.Artifact("App.vue")
	if before != after {
		t.Error("artifact changed on aborted compile")
	}
}

func TestCompileAllVisitsEveryFile(t *testing.T) {
	store := newTestStore(t, &stubServices{})
	store.AddFile("a.css", ".a {}")
	store.AddFile("b.css", ".b {}")

	results := store.CompileAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for name, result := range results {
		if !result.OK() {
			t.Errorf("%s failed: %v", name, result.Errors)
		}
	}
}
