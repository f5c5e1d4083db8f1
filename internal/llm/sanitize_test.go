package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"name":"Ravi"}`, StripCodeFences("```json\n{\"name\":\"Ravi\"}\n```"))
	assert.Equal(t, `{"name":"Ravi"}`, StripCodeFences("```\n{\"name\":\"Ravi\"}\n```"))
	assert.Equal(t, `{"name":"Ravi"}`, StripCodeFences(`{"name":"Ravi"}`))
}

func TestNormalizeModelJSON(t *testing.T) {
	raw := []byte(`{
		"name": "  Asha Rao  ",
		"age": 29,
		"height": null,
		"confidence": 0.9,
		"looking_for": "Groom"
	}`)

	normalized, adjusted, err := NormalizeModelJSON(raw, nil)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(normalized, &out))

	assert.Equal(t, "Asha Rao", out["name"])
	assert.Equal(t, "29", out["age"])
	assert.Equal(t, "", out["height"])
	assert.Equal(t, "Groom", out["looking_for"])

	_, hasUnknown := out["confidence"]
	assert.False(t, hasUnknown, "unknown keys must be dropped")

	// every vocabulary key is present after normalization
	for _, k := range constants.FieldKeys() {
		_, ok := out[k]
		assert.True(t, ok, "missing key %s", k)
	}

	assert.Contains(t, adjusted, "age(number)")
	assert.Contains(t, adjusted, "height(null)")
	assert.Contains(t, adjusted, "confidence(unknown)")
}

func TestNormalizeModelJSONNotAnObject(t *testing.T) {
	_, _, err := NormalizeModelJSON([]byte(`["not","an","object"]`), nil)
	require.Error(t, err)

	_, _, err = NormalizeModelJSON([]byte(`not json at all`), nil)
	require.Error(t, err)
}

func TestNormalizedOutputPassesSchema(t *testing.T) {
	raw := []byte(`{"name":"Asha Rao","dob":"1995-01-01","age":29,"looking_for":"Groom"}`)
	normalized, _, err := NormalizeModelJSON(raw, nil)
	require.NoError(t, err)
	require.NoError(t, ValidateJSONAgainstSchema(BuildBiodataJSONSchema(), normalized))
}

func TestSchemaRejectsBadValues(t *testing.T) {
	bad := []byte(`{"dob":"Jan 1st 1995"}`)
	assert.Error(t, ValidateJSONAgainstSchema(BuildBiodataJSONSchema(), bad))

	badLooking := []byte(`{"looking_for":"Partner"}`)
	assert.Error(t, ValidateJSONAgainstSchema(BuildBiodataJSONSchema(), badLooking))
}
