package parcellation

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LevelMatch identifies one use of a categorical code: which atlas, which
// label field, and the human-readable name the code carries there. The same
// code appears in multiple fields, so Resolve returns a slice.
type LevelMatch struct {
	Atlas string
	Field string
	Label string
}

// Registry holds every parsed atlas descriptor plus cross-atlas indexes.
type Registry struct {
	Atlases []*Descriptor           // sorted by Name
	Codes   map[string][]LevelMatch // level code -> uses across all atlases

	AtlasCount   int
	FieldCount   int // label fields across all atlases
	LevelEntries int // level entries across all fields (includes shared codes)
	UniqueCodes  int // unique level codes (map keys)

	byName map[string]*Descriptor
}

// LoadRegistry reads all *.json descriptors from an fs.FS directory.
// Files are loaded in sorted order for deterministic results.
// Returns an error if any file fails to parse or validate, if two files
// declare the same atlas Name, or if the directory holds no descriptors.
func LoadRegistry(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read atlas dir %q: %w", dir, err)
	}

	// Sort for deterministic load order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var atlases []*Descriptor
	seen := make(map[string]string) // atlas Name -> source file

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// path.Join cleans "./x" to "x"; fs.ValidPath rejects the raw form.
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		d, err := ParseDescriptor(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		if prev, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("duplicate atlas name %q (first in %s, again in %s)", d.Name, prev, entry.Name())
		}
		seen[d.Name] = entry.Name()
		atlases = append(atlases, d)
	}

	if len(atlases) == 0 {
		return nil, fmt.Errorf("no atlas descriptors found in %q", dir)
	}

	sort.Slice(atlases, func(i, j int) bool {
		return atlases[i].Name < atlases[j].Name
	})

	// Build code -> atlas/field index
	codes := make(map[string][]LevelMatch)
	byName := make(map[string]*Descriptor, len(atlases))
	fieldCount := 0
	levelEntries := 0

	for _, d := range atlases {
		byName[d.Name] = d
		for _, name := range d.FieldNames() {
			fieldCount++
			field := d.Fields[name]
			levelEntries += len(field.Levels)
			for _, code := range field.Codes() {
				codes[code] = append(codes[code], LevelMatch{
					Atlas: d.Name,
					Field: name,
					Label: field.Levels[code],
				})
			}
		}
	}

	return &Registry{
		Atlases:      atlases,
		Codes:        codes,
		AtlasCount:   len(atlases),
		FieldCount:   fieldCount,
		LevelEntries: levelEntries,
		UniqueCodes:  len(codes),
		byName:       byName,
	}, nil
}

// Lookup returns the descriptor for an atlas name, or nil if unknown.
func (r *Registry) Lookup(name string) *Descriptor {
	return r.byName[name]
}

// Names returns the atlas names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Atlases))
	for _, d := range r.Atlases {
		names = append(names, d.Name)
	}
	return names
}

// Resolve returns every use of a categorical code across all atlases, in
// (atlas, field) order. Returns nil for unknown codes.
func (r *Registry) Resolve(code string) []LevelMatch {
	return r.Codes[code]
}
