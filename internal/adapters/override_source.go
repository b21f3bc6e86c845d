package adapters

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"license-audit/internal/ports"
	"license-audit/internal/shared"
)

// OverrideSourceAdapter answers license lookups from a static YAML table
// maintained by the compliance owner. Keys are package names, optionally
// version-qualified as "name@version"; version-qualified entries win over
// bare ones. The table is loaded once at construction and never mutated.
type OverrideSourceAdapter struct {
	entries map[string]string
}

func NewOverrideSourceAdapter(path string) (OverrideSourceAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OverrideSourceAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("override table not found").
			WithCause(err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return OverrideSourceAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse override table yaml").
			WithCause(err)
	}
	entries := make(map[string]string, len(raw))
	for key, license := range raw {
		entries[normalizeOverrideKey(key)] = license
	}
	return OverrideSourceAdapter{entries: entries}, nil
}

func (a OverrideSourceAdapter) Name() string {
	return "override-table"
}

func (a OverrideSourceAdapter) Lookup(_ context.Context, name string, version string) (string, bool, error) {
	if version != "" {
		if license, ok := a.entries[name+"@"+version]; ok {
			return license, true, nil
		}
	}
	license, ok := a.entries[name]
	return license, ok, nil
}

func normalizeOverrideKey(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '@' {
			return shared.NormalizeName(key[:i]) + key[i:]
		}
	}
	return shared.NormalizeName(key)
}

var _ ports.LicenseSourcePort = OverrideSourceAdapter{}
