package adapters

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-audit/internal/core"
	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// ManifestLocatorAdapter discovers dependency manifests on the local
// filesystem and reads their contents for the pipeline.
type ManifestLocatorAdapter struct{}

func NewManifestLocatorAdapter() ManifestLocatorAdapter {
	return ManifestLocatorAdapter{}
}

func (a ManifestLocatorAdapter) Discover(root string) ([]types.ManifestRef, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is empty")
	}
	var refs []types.ManifestRef
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipProjectDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if dialect, ok := core.DetectDialect(path); ok {
			refs = append(refs, types.ManifestRef{Path: path, Dialect: dialect})
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan project root").
			WithCause(err)
	}
	// WalkDir is already lexically ordered; sort anyway so output order
	// never depends on filesystem behavior.
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Path < refs[j].Path
	})
	return refs, nil
}

func (a ManifestLocatorAdapter) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not readable").
			WithCause(err)
	}
	return string(data), nil
}

func shouldSkipProjectDir(name string) bool {
	switch name {
	case ".git", ".svn", ".hg", ".venv", "venv", ".env", "env",
		"__pycache__", ".pytest_cache", ".tox", "dist", "build",
		"node_modules", ".mypy_cache":
		return true
	default:
		return false
	}
}

var _ ports.ManifestLocatorPort = ManifestLocatorAdapter{}
