package parcellation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalDoc builds the smallest valid descriptor document for an atlas name.
func minimalDoc(name string) string {
	return fmt.Sprintf(`{
		"BIDSVersion": "1.4.0",
		"Density": {"32k": "29706 vertices per hemisphere"},
		"Description": "test atlas",
		"Name": %q,
		"ReferencesAndLinks": ["https://example.org/paper"],
		"SpatialReference": {
			"CIFTI_STRUCTURE_CORTEX_LEFT": "https://example.org/L.surf.gii",
			"CIFTI_STRUCTURE_CORTEX_RIGHT": "https://example.org/R.surf.gii"
		},
		"cifti_label": {
			"Description": "parcel names",
			"LongName": "CIFTI parcel label"
		},
		"community_yeo": {
			"Description": "network assignment",
			"LongName": "Yeo functional network",
			"Levels": {"1": "Visual", "2": "Somatomotor"}
		}
	}`, name)
}

func TestParseDescriptor_MinimalValid(t *testing.T) {
	d, err := ParseDescriptor([]byte(minimalDoc("Test")))
	require.NoError(t, err)

	assert.Equal(t, "Test", d.Name)
	assert.Equal(t, "1.4.0", d.BIDSVersion)
	assert.Equal(t, "29706 vertices per hemisphere", d.Density["32k"])
	assert.Equal(t, []string{"cifti_label", "community_yeo"}, d.FieldNames())

	yeo, ok := d.Field("community_yeo")
	require.True(t, ok)
	assert.Equal(t, "Yeo functional network", yeo.LongName)
	assert.Equal(t, "Visual", yeo.Levels["1"])

	label, ok := d.Field("cifti_label")
	require.True(t, ok)
	assert.Empty(t, label.Levels, "the parcel-name field is free-form")
}

func TestParseDescriptor_IgnoresUnknownSiblings(t *testing.T) {
	// Only cifti_label and community_* become label fields; other keys are
	// left to the fixed schema or ignored.
	doc := `{
		"Name": "Test",
		"VertexCount": 59412,
		"community_yeo": {
			"Description": "network assignment",
			"LongName": "Yeo functional network",
			"Levels": {"1": "Visual"}
		}
	}`
	d, err := ParseDescriptor([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"community_yeo"}, d.FieldNames())
}

func TestParseDescriptor_MalformedJSON(t *testing.T) {
	_, err := ParseDescriptor([]byte(`{"Name": "Test",`))
	assert.Error(t, err)
}

func TestParseDescriptor_DuplicateTopLevelKey(t *testing.T) {
	doc := `{"Name": "Test", "Name": "Other"}`
	_, err := ParseDescriptor([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate key "Name"`)
}

func TestParseDescriptor_DuplicateLevelCode(t *testing.T) {
	doc := `{
		"Name": "Test",
		"community_yeo": {
			"Description": "network assignment",
			"LongName": "Yeo functional network",
			"Levels": {"1": "Visual", "1": "Somatomotor"}
		}
	}`
	_, err := ParseDescriptor([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate level code "1"`)
}

func TestParseDescriptor_EmptyLevelLabel(t *testing.T) {
	doc := `{
		"Name": "Test",
		"community_yeo": {
			"Description": "network assignment",
			"LongName": "Yeo functional network",
			"Levels": {"1": ""}
		}
	}`
	_, err := ParseDescriptor([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty label")
}

func TestParseDescriptor_MissingLongName(t *testing.T) {
	doc := `{
		"Name": "Test",
		"community_yeo": {
			"Description": "network assignment",
			"Levels": {"1": "Visual"}
		}
	}`
	_, err := ParseDescriptor([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LongName is empty")
}

func TestParseDescriptor_EmptyName(t *testing.T) {
	_, err := ParseDescriptor([]byte(`{"Description": "nameless"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is empty")
}

func TestParseDescriptor_RelativeSpatialReference(t *testing.T) {
	doc := `{
		"Name": "Test",
		"SpatialReference": {"CIFTI_STRUCTURE_CORTEX_LEFT": "surfaces/L.surf.gii"}
	}`
	_, err := ParseDescriptor([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an absolute URL")
}

func TestDescriptor_MarshalRoundTrip(t *testing.T) {
	// A marshaled descriptor keeps the on-disk shape: label fields as
	// top-level siblings of the fixed keys.
	d, err := ParseDescriptor([]byte(minimalDoc("Test")))
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)

	again, err := ParseDescriptor(out)
	require.NoError(t, err)
	assert.Equal(t, d.Name, again.Name)
	assert.Equal(t, d.SpatialReference, again.SpatialReference)
	assert.Equal(t, d.Fields, again.Fields)
}

func TestLabelField_CodesNumericOrder(t *testing.T) {
	field := LabelField{Levels: map[string]string{
		"10": "ten", "2": "two", "1": "one",
	}}
	assert.Equal(t, []string{"1", "2", "10"}, field.Codes())
}

func TestLabelField_CodesLexicalFallback(t *testing.T) {
	field := LabelField{Levels: map[string]string{
		"vis": "visual", "som": "somatomotor", "10": "ten",
	}}
	assert.Equal(t, []string{"10", "som", "vis"}, field.Codes())
}
