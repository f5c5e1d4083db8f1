package llm

import "github.com/joseph-ayodele/biodata-intake/constants"

// BuildBiodataJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map constraining model output to the closed field vocabulary.
// Every property is a string; empty string means "not found", so dob and
// looking_for both admit "" alongside their strict forms.
func BuildBiodataJSONSchema() map[string]any {
	props := make(map[string]any, len(constants.FieldKeys()))
	for _, k := range constants.FieldKeys() {
		switch k {
		case constants.FieldDOB:
			props[k] = map[string]any{"type": "string", "pattern": `^$|^\d{4}-\d{2}-\d{2}$`}
		case constants.FieldAge:
			props[k] = map[string]any{"type": "string", "pattern": `^$|^\d{1,3}$`}
		case constants.FieldLookingFor:
			props[k] = map[string]any{"type": "string", "enum": []string{"", constants.LookingForBride, constants.LookingForGroom}}
		default:
			props[k] = map[string]any{"type": "string"}
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
