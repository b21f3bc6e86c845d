package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"license-audit/internal/ports"
	"license-audit/internal/shared"
)

// DistInfoSourceAdapter answers license lookups from installed-environment
// metadata: the *.dist-info/METADATA files inside one or more
// site-packages directories. Directory listings are cached per root so a
// scan with hundreds of dependencies stats each root once.
type DistInfoSourceAdapter struct {
	roots []string

	mu    sync.Mutex
	cache map[string][]distInfoEntry
}

type distInfoEntry struct {
	name    string
	version string
	path    string
}

func NewDistInfoSourceAdapter(roots []string) *DistInfoSourceAdapter {
	return &DistInfoSourceAdapter{
		roots: roots,
		cache: map[string][]distInfoEntry{},
	}
}

func (a *DistInfoSourceAdapter) Name() string {
	return "dist-info"
}

func (a *DistInfoSourceAdapter) Lookup(_ context.Context, name string, version string) (string, bool, error) {
	for _, root := range a.roots {
		entries := a.entriesFor(root)
		for _, entry := range entries {
			if entry.name != name {
				continue
			}
			if version != "" && entry.version != version {
				continue
			}
			license, ok := readMetadataLicense(entry.path)
			if ok {
				return license, true, nil
			}
		}
	}
	return "", false, nil
}

// entriesFor lists the dist-info directories under one root, caching the
// result. An unreadable root is treated as empty: a missing environment is
// a miss, not a failure.
func (a *DistInfoSourceAdapter) entriesFor(root string) []distInfoEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cached, ok := a.cache[root]; ok {
		return cached
	}
	var entries []distInfoEntry
	dirents, err := os.ReadDir(root)
	if err == nil {
		for _, dirent := range dirents {
			if !dirent.IsDir() || !strings.HasSuffix(dirent.Name(), ".dist-info") {
				continue
			}
			base := strings.TrimSuffix(dirent.Name(), ".dist-info")
			dash := strings.LastIndex(base, "-")
			if dash <= 0 {
				continue
			}
			entries = append(entries, distInfoEntry{
				name:    shared.NormalizeName(base[:dash]),
				version: base[dash+1:],
				path:    filepath.Join(root, dirent.Name(), "METADATA"),
			})
		}
	}
	a.cache[root] = entries
	return entries
}

// readMetadataLicense extracts license information from a METADATA file.
// Precedence: the License-Expression header (PEP 639), then a meaningful
// License header, then trove classifiers. Multiple classifiers join with
// ";" so the normalizer applies its dual-license rule to them.
func readMetadataLicense(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var license string
	var classifiers []string
	for _, line := range strings.Split(string(data), "\n") {
		// Headers end at the first blank line; the body is license text
		// we do not want to scan.
		if strings.TrimSpace(line) == "" {
			break
		}
		switch {
		case strings.HasPrefix(line, "License-Expression:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "License-Expression:"))
			if value != "" {
				return value, true
			}
		case strings.HasPrefix(line, "License:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "License:"))
			if value != "" && !strings.EqualFold(value, "UNKNOWN") {
				license = value
			}
		case strings.HasPrefix(line, "Classifier: License ::"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Classifier: License ::"))
			value = strings.TrimSpace(strings.TrimPrefix(value, "OSI Approved ::"))
			if value != "" {
				classifiers = append(classifiers, value)
			}
		}
	}
	if license != "" {
		return license, true
	}
	if len(classifiers) > 0 {
		return strings.Join(classifiers, "; "), true
	}
	return "", false
}

var _ ports.LicenseSourcePort = (*DistInfoSourceAdapter)(nil)
