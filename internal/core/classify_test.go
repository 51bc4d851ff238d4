package core

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		source   string
		want     FileKind
	}{
		{"component file", "App.vue", "<template><div/></template>", KindComponent},
		{"stylesheet", "theme.css", "body { margin: 0 }", KindStylesheet},
		{"plain script", "util.js", "export const x = 1", KindScript},
		{"typed script", "util.ts", "export const x: number = 1", KindTypedScript},
		{"unknown suffix is inert", "README.md", "# hi", KindInert},
		{"no suffix is inert", "Makefile", "all:", KindInert},
		{"empty source is blank", "App.vue", "", KindBlank},
		{"whitespace-only source is blank", "util.js", "  \n\t ", KindBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.filename, tt.source); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
