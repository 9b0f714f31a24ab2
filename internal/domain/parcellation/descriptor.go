// Package parcellation provides typed access to BIDS atlas descriptors.
// A descriptor is one atlas-<Name>_dseg.json file: atlas identity, spatial
// reference surfaces, surface density, and the label fields that map each
// parcel to a name (cifti_label) or to a community class (community_*).
//
// Descriptors are authored once and read-only; all invariants are enforced
// at parse time and a parsed Descriptor is never mutated.
package parcellation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	ciftiLabelKey   = "cifti_label"
	communityPrefix = "community_"
)

// LabelField describes one per-parcel labeling scheme. Fields with a Levels
// table are categorical: Levels enumerates the permitted codes and their
// human-readable names. Fields without Levels (the parcel-name field) are
// free-form.
type LabelField struct {
	Description string            `json:"Description" yaml:"Description"`
	LongName    string            `json:"LongName" yaml:"LongName"`
	Levels      map[string]string `json:"Levels,omitempty" yaml:"Levels,omitempty"`
}

// Codes returns the field's level codes. All-numeric code sets sort
// numerically ("2" before "10"), anything else lexically.
func (f LabelField) Codes() []string {
	codes := make([]string, 0, len(f.Levels))
	for code := range f.Levels {
		codes = append(codes, code)
	}
	sortCodes(codes)
	return codes
}

// Descriptor is the parsed form of one atlas descriptor file.
type Descriptor struct {
	BIDSVersion        string
	Density            map[string]string
	Description        string
	Name               string
	ReferencesAndLinks []string
	SpatialReference   map[string]string

	// Fields holds the label fields keyed by their JSON name:
	// "cifti_label" plus every "community_*" key present in the file.
	Fields map[string]LabelField
}

// FieldNames returns the label field names in sorted order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the named label field.
func (d *Descriptor) Field(name string) (LabelField, bool) {
	f, ok := d.Fields[name]
	return f, ok
}

// ParseDescriptor parses and validates one descriptor document.
// Duplicate keys — at the top level or inside any Levels table — are
// rejected rather than silently collapsed.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	if key, err := duplicateKey(data); err != nil {
		return nil, err
	} else if key != "" {
		return nil, fmt.Errorf("duplicate key %q", key)
	}

	var fixed struct {
		BIDSVersion        string            `json:"BIDSVersion"`
		Density            map[string]string `json:"Density"`
		Description        string            `json:"Description"`
		Name               string            `json:"Name"`
		ReferencesAndLinks []string          `json:"ReferencesAndLinks"`
		SpatialReference   map[string]string `json:"SpatialReference"`
	}
	if err := json.Unmarshal(data, &fixed); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	d := &Descriptor{
		BIDSVersion:        fixed.BIDSVersion,
		Density:            fixed.Density,
		Description:        fixed.Description,
		Name:               fixed.Name,
		ReferencesAndLinks: fixed.ReferencesAndLinks,
		SpatialReference:   fixed.SpatialReference,
		Fields:             make(map[string]LabelField),
	}

	for key, msg := range raw {
		if key != ciftiLabelKey && !strings.HasPrefix(key, communityPrefix) {
			continue
		}
		field, err := parseLabelField(msg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		d.Fields[key] = field
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseLabelField(msg json.RawMessage) (LabelField, error) {
	if key, err := duplicateKey(msg); err != nil {
		return LabelField{}, err
	} else if key != "" {
		return LabelField{}, fmt.Errorf("duplicate key %q", key)
	}

	var probe struct {
		Levels json.RawMessage `json:"Levels"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil {
		return LabelField{}, err
	}
	if len(probe.Levels) > 0 {
		if key, err := duplicateKey(probe.Levels); err != nil {
			return LabelField{}, err
		} else if key != "" {
			return LabelField{}, fmt.Errorf("duplicate level code %q", key)
		}
	}

	var field LabelField
	if err := json.Unmarshal(msg, &field); err != nil {
		return LabelField{}, err
	}
	return field, nil
}

func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("Name is empty")
	}
	for res, desc := range d.Density {
		if desc == "" {
			return fmt.Errorf("Density[%s]: empty description", res)
		}
	}
	for structure, ref := range d.SpatialReference {
		u, err := url.Parse(ref)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("SpatialReference[%s]: not an absolute URL: %q", structure, ref)
		}
	}
	for name, field := range d.Fields {
		if field.LongName == "" {
			return fmt.Errorf("%s: LongName is empty", name)
		}
		if field.Description == "" {
			return fmt.Errorf("%s: Description is empty", name)
		}
		for code, label := range field.Levels {
			if code == "" {
				return fmt.Errorf("%s: empty level code", name)
			}
			if label == "" {
				return fmt.Errorf("%s: level %q has an empty label", name, code)
			}
		}
	}
	return nil
}

// MarshalJSON re-emits the descriptor in its on-disk shape: fixed fields and
// label fields as siblings at the top level.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Document())
}

// Document flattens the descriptor back to its document shape, for encoders
// that cannot see the dynamic label-field keys. Uppercase fixed keys sort
// before the lowercase label-field keys, matching the source files.
func (d *Descriptor) Document() map[string]any {
	m := map[string]any{
		"BIDSVersion":        d.BIDSVersion,
		"Density":            d.Density,
		"Description":        d.Description,
		"Name":               d.Name,
		"ReferencesAndLinks": d.ReferencesAndLinks,
		"SpatialReference":   d.SpatialReference,
	}
	for name, field := range d.Fields {
		m[name] = field
	}
	return m
}

// duplicateKey returns the first key repeated at the top level of the JSON
// object in data, or "". encoding/json keeps only the last occurrence of a
// repeated key, so this is the only way to surface the authoring error.
func duplicateKey(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", nil // not an object, nothing to check
	}

	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, ok := tok.(string)
		if !ok {
			return "", fmt.Errorf("unexpected token %v in object", tok)
		}
		if seen[key] {
			return key, nil
		}
		seen[key] = true
		if err := skipValue(dec); err != nil {
			return "", err
		}
	}
	return "", nil
}

// skipValue consumes one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func sortCodes(codes []string) {
	numeric := true
	for _, c := range codes {
		if _, err := strconv.Atoi(c); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		sort.Slice(codes, func(i, j int) bool {
			a, _ := strconv.Atoi(codes[i])
			b, _ := strconv.Atoi(codes[j])
			return a < b
		})
		return
	}
	sort.Strings(codes)
}
