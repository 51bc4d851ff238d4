package mimir

import (
	"context"
	"fmt"
	"sync"

	"github.com/3-lines-studio/mimir/internal/compiler"
	"github.com/3-lines-studio/mimir/internal/service"
	"github.com/3-lines-studio/mimir/internal/types"
)

type VirtualFile = types.VirtualFile

type CompiledArtifact = types.CompiledArtifact

type CompileResult = types.CompileResult

type Options = compiler.Options

// Store owns the playground's virtual files and their compiled artifacts.
// Compiles are serialized by the store's lock: the pipeline is strictly
// sequential and one in-flight compile per store is the supported model.
type Store struct {
	mu       sync.Mutex
	files    map[string]*types.VirtualFile
	order    []string
	errors   map[string][]string
	pipeline *compiler.Pipeline
	stop     func() error
}

type config struct {
	opts          compiler.Options
	collaborators *compiler.Collaborators
}

type Option func(*config)

// WithOptions overlays stage options onto the defaults.
func WithOptions(opts Options) Option {
	return func(c *config) {
		c.opts = c.opts.Merge(opts)
	}
}

// WithCollaborators swaps the external compiler services. Used by tests and
// by embedders that bring their own toolchain transport.
func WithCollaborators(svc compiler.Collaborators) Option {
	return func(c *config) {
		c.collaborators = &svc
	}
}

// New creates a Store. Unless collaborators are supplied it starts the
// sidecar compiler service, which Stop shuts down.
func New(opts ...Option) (*Store, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	svc := cfg.collaborators
	stop := func() error { return nil }
	if svc == nil {
		client, err := service.NewClient()
		if err != nil {
			return nil, err
		}
		c := client.Collaborators()
		svc = &c
		stop = client.Stop
	}

	return &Store{
		files:    make(map[string]*types.VirtualFile),
		errors:   make(map[string][]string),
		pipeline: compiler.NewPipeline(*svc, cfg.opts),
		stop:     stop,
	}, nil
}

// AddFile inserts or updates a virtual file. Updating keeps the previous
// artifact: it stays valid-but-stale until the next compile.
func (s *Store) AddFile(filename, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if file, ok := s.files[filename]; ok {
		file.Source = source
		return
	}
	s.files[filename] = &types.VirtualFile{Filename: filename, Source: source}
	s.order = append(s.order, filename)
}

// Compile runs the pipeline for one file and records its current errors.
func (s *Store) Compile(ctx context.Context, filename string) CompileResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[filename]
	if !ok {
		return types.Failure(fmt.Sprintf("unknown file %q", filename))
	}

	result := s.pipeline.Compile(ctx, file)
	s.errors[filename] = result.Errors
	return result
}

// CompileAll compiles every file sequentially in insertion order.
func (s *Store) CompileAll(ctx context.Context) map[string]CompileResult {
	s.mu.Lock()
	order := append([]string(nil), s.order...)
	s.mu.Unlock()

	results := make(map[string]CompileResult, len(order))
	for _, filename := range order {
		results[filename] = s.Compile(ctx, filename)
	}
	return results
}

// Errors reports the errors recorded by the most recent compile of filename.
func (s *Store) Errors(filename string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errors[filename]...)
}

// Artifact returns a copy of the file's compiled artifact.
func (s *Store) Artifact(filename string) (CompiledArtifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[filename]
	if !ok {
		return CompiledArtifact{}, false
	}
	return file.Artifact, true
}

// Files lists filenames in insertion order.
func (s *Store) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *Store) Stop() error {
	return s.stop()
}
