package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/parc/internal/domain/parcellation"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// formatList formats the registry overview.
//
//	⚡ 4 atlases │ 10 label fields │ 65 levels
//	  Glasser      32k  4 fields
func formatList(reg *parcellation.Registry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d atlases%s │ %d label fields │ %d levels\n",
		colorBold, reg.AtlasCount, colorReset, reg.FieldCount, reg.LevelEntries))

	for _, d := range reg.Atlases {
		sb.WriteString(fmt.Sprintf("  %s%-12s%s %-6s %d fields\n",
			colorCyan, d.Name, colorReset, strings.Join(sortedKeys(d.Density), ","), len(d.Fields)))
	}
	return sb.String()
}

// formatDescriptor formats one descriptor for terminal display.
func formatDescriptor(d *parcellation.Descriptor) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s%s%s\n", colorBold, d.Name, colorReset))
	sb.WriteString(fmt.Sprintf("  %s\n", d.Description))
	for _, res := range sortedKeys(d.Density) {
		sb.WriteString(fmt.Sprintf("  density %s: %s\n", res, d.Density[res]))
	}
	for _, structure := range sortedKeys(d.SpatialReference) {
		sb.WriteString(fmt.Sprintf("  %s%s%s → %s\n",
			colorGray, structure, colorReset, d.SpatialReference[structure]))
	}
	for _, name := range d.FieldNames() {
		field := d.Fields[name]
		if len(field.Levels) == 0 {
			sb.WriteString(fmt.Sprintf("  %s%s%s — %s\n", colorCyan, name, colorReset, field.LongName))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s — %s (%d levels)\n",
			colorCyan, name, colorReset, field.LongName, len(field.Levels)))
	}
	return sb.String()
}

// formatLevels formats one field's level table, codes right-aligned.
func formatLevels(field parcellation.LabelField) string {
	var sb strings.Builder
	for _, code := range field.Codes() {
		sb.WriteString(fmt.Sprintf("  %s%3s%s  %s\n", colorBold, code, colorReset, field.Levels[code]))
	}
	return sb.String()
}

// formatMatches formats the cross-atlas uses of one level code.
func formatMatches(code string, matches []parcellation.LevelMatch) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d uses%s of code %q\n", colorBold, len(matches), colorReset, code))
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("  %s%s/%s%s  %s\n", colorCyan, m.Atlas, m.Field, colorReset, m.Label))
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
