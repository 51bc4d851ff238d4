package compiler

import "github.com/spf13/cast"

// Options carries per-stage tuning for the pipeline. Zero value is fully
// usable; every field has a working default.
type Options struct {
	Script   ScriptOptions
	Template TemplateOptions
	Style    StyleOptions
}

// ScriptOptions configures script-section compilation. Compiler holds loose,
// compiler-specific sub-options forwarded to the external service verbatim;
// the keys the pipeline itself understands are read back with coercion so
// callers can pass whatever scalar shape they have at hand.
type ScriptOptions struct {
	// InlineTemplate nil means enabled (the default for script-setup
	// components); explicit false forces a separate template compile.
	InlineTemplate *bool
	SSRCssVars     []string
	Compiler       map[string]any
}

func (o ScriptOptions) inlineTemplate() bool {
	if o.InlineTemplate != nil {
		return *o.InlineTemplate
	}
	if v, ok := o.Compiler["inlineTemplate"]; ok {
		return cast.ToBool(v)
	}
	return true
}

func (o ScriptOptions) ssrCssVars() []string {
	if o.SSRCssVars != nil {
		return o.SSRCssVars
	}
	if v, ok := o.Compiler["ssrCssVars"]; ok {
		return cast.ToStringSlice(v)
	}
	return nil
}

type TemplateOptions struct {
	Compiler map[string]any
}

type StyleOptions struct {
	Compiler map[string]any
}

// Merge overlays caller-supplied overrides onto o. Nested compiler maps are
// merged key-wise, override winning.
func (o Options) Merge(override Options) Options {
	merged := o
	if override.Script.InlineTemplate != nil {
		merged.Script.InlineTemplate = override.Script.InlineTemplate
	}
	if override.Script.SSRCssVars != nil {
		merged.Script.SSRCssVars = override.Script.SSRCssVars
	}
	merged.Script.Compiler = mergeCompilerOptions(o.Script.Compiler, override.Script.Compiler)
	merged.Template.Compiler = mergeCompilerOptions(o.Template.Compiler, override.Template.Compiler)
	merged.Style.Compiler = mergeCompilerOptions(o.Style.Compiler, override.Style.Compiler)
	return merged
}

func mergeCompilerOptions(base, override map[string]any) map[string]any {
	if base == nil && override == nil {
		return nil
	}
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
