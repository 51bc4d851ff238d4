package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/mimir"
	"github.com/3-lines-studio/mimir/internal/cliout"
	"github.com/3-lines-studio/mimir/internal/logger"
)

func main() {
	outDir := flag.String("out", "", "write compiled artifacts into this directory")
	flag.Parse()

	logger.Setup(os.Getenv("MIMIR_ENV"))

	if flag.NArg() < 1 {
		cliout.PrintHeader("Mimir Compile")
		cliout.PrintError("Missing source directory argument")
		cliout.PrintStep("Usage: mimir [-out dir] <src-dir>")
		os.Exit(1)
	}
	srcDir := flag.Arg(0)

	store, err := mimir.New()
	if err != nil {
		cliout.PrintError("Failed to start compiler: %v", err)
		os.Exit(1)
	}
	defer func() { _ = store.Stop() }()

	cliout.PrintHeader("Mimir Compile")
	if err := loadFiles(store, srcDir); err != nil {
		cliout.PrintError("%v", err)
		os.Exit(1)
	}

	results := store.CompileAll(context.Background())

	failed := 0
	for _, filename := range store.Files() {
		result := results[filename]
		if result.OK() {
			cliout.PrintSuccess("%s", filename)
			continue
		}
		failed++
		cliout.PrintError("%s", filename)
		for _, msg := range result.Errors {
			cliout.PrintFile(msg)
		}
	}

	if *outDir != "" {
		if err := writeArtifacts(store, *outDir); err != nil {
			cliout.PrintError("Failed to write artifacts: %v", err)
			os.Exit(1)
		}
		cliout.PrintStep("Artifacts written to %s", *outDir)
	}

	if failed > 0 {
		cliout.PrintWarning("%d file(s) failed to compile", failed)
		os.Exit(1)
	}
}

// loadFiles walks srcDir and adds every regular file under it, keyed by its
// slash-separated path relative to srcDir.
func loadFiles(store *mimir.Store, srcDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != srcDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		store.AddFile(filepath.ToSlash(rel), string(source))
		return nil
	})
}

func writeArtifacts(store *mimir.Store, outDir string) error {
	for _, filename := range store.Files() {
		artifact, ok := store.Artifact(filename)
		if !ok {
			continue
		}

		base := strings.ReplaceAll(filename, "/", "-")
		outputs := map[string]string{
			base + ".js":     artifact.JS,
			base + ".ssr.js": artifact.SSR,
			base + ".css":    artifact.CSS,
		}
		for name, content := range outputs {
			if content == "" {
				continue
			}
			target := filepath.Join(outDir, name)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return err
			}
		}
	}
	return nil
}
