// Package workspace provides the explicit root-directory handle every
// fixture builder writes into. Builders never pick their own directory;
// callers hand them a Workspace rooted at t.TempDir() in tests or at a
// fresh uniquely named directory from the CLI.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DescriptorFile is the name of the fixture descriptor written by Describe.
const DescriptorFile = "fixture.yaml"

// Workspace is a directory owned by a single fixture build.
type Workspace struct {
	root string
	id   string
	kind string
}

// New wraps an existing directory. The directory must already exist.
func New(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", abs)
	}
	return &Workspace{root: abs}, nil
}

// Create makes a fresh directory <parent>/<kind>-<uuid> and returns a
// Workspace rooted there. The ID is a UUIDv7 so directories sort by
// creation time.
func Create(parent, kind string) (*Workspace, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate fixture id: %w", err)
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}
	dir := filepath.Join(parent, kind+"-"+id.String())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	ws, err := New(dir)
	if err != nil {
		return nil, err
	}
	ws.id = id.String()
	ws.kind = kind
	return ws, nil
}

// Root returns the absolute workspace directory.
func (w *Workspace) Root() string { return w.root }

// ID returns the fixture ID assigned by Create, or "" for wrapped
// directories.
func (w *Workspace) ID() string { return w.id }

// Path joins elem onto the workspace root without touching the filesystem.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.root}, elem...)...)
}

// Mkdir creates a directory (and parents) under the root.
func (w *Workspace) Mkdir(elem ...string) (string, error) {
	p := w.Path(elem...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", p, err)
	}
	return p, nil
}

// Touch creates an empty file under the root if it does not exist. An
// existing file is left unchanged.
func (w *Workspace) Touch(elem ...string) (string, error) {
	p := w.Path(elem...)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("touch %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("touch %s: %w", p, err)
	}
	return p, nil
}

// Descriptor records what a fixture build produced.
type Descriptor struct {
	ID      string            `yaml:"id,omitempty"`
	Kind    string            `yaml:"kind"`
	Created time.Time         `yaml:"created"`
	Outputs map[string]string `yaml:"outputs"`
	Config  []string          `yaml:"config,omitempty"`
	Digest  string            `yaml:"digest,omitempty"`
}

// Describe writes d to fixture.yaml in the workspace root. ID and Kind
// default to the values assigned by Create.
func (w *Workspace) Describe(d Descriptor) (string, error) {
	if d.ID == "" {
		d.ID = w.id
	}
	if d.Kind == "" {
		d.Kind = w.kind
	}
	if d.Created.IsZero() {
		d.Created = time.Now().UTC()
	}

	data, err := yaml.Marshal(&d)
	if err != nil {
		return "", fmt.Errorf("marshal descriptor: %w", err)
	}
	p := w.Path(DescriptorFile)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write descriptor: %w", err)
	}
	return p, nil
}

// ReadDescriptor loads a fixture.yaml file.
func ReadDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, err
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("parse descriptor: %w", err)
	}
	return d, nil
}
