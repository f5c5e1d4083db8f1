package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

// StripCodeFences removes surrounding markdown code-fence markers that
// chat models habitually wrap JSON in.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// NormalizeModelJSON massages a model response toward the strict schema:
//   - unknown keys are removed (additionalProperties = false friendliness)
//   - null becomes ""
//   - numbers and booleans are coerced to strings (ages arrive as numbers)
//   - string values are trimmed
//   - missing vocabulary keys are filled with ""
//
// It returns the normalized document and the list of adjustments made.
// A document that is not a JSON object at all is a hard error; the caller
// falls back rather than retrying.
func NormalizeModelJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("normalize: decode: %w", err)
	}

	adjusted := make([]string, 0, 4)
	out := make(map[string]string, len(constants.FieldKeys()))

	for k, v := range m {
		if !constants.IsFieldKey(k) {
			adjusted = append(adjusted, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case string:
			out[k] = strings.TrimSpace(t)
		case float64:
			if t == float64(int64(t)) {
				out[k] = strconv.FormatInt(int64(t), 10)
			} else {
				out[k] = strconv.FormatFloat(t, 'f', -1, 64)
			}
			adjusted = append(adjusted, k+"(number)")
		case bool:
			out[k] = strconv.FormatBool(t)
			adjusted = append(adjusted, k+"(bool)")
		case nil:
			out[k] = ""
			adjusted = append(adjusted, k+"(null)")
		default:
			out[k] = ""
			adjusted = append(adjusted, k+"(type)")
		}
	}

	for _, k := range constants.FieldKeys() {
		if _, ok := out[k]; !ok {
			out[k] = ""
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, adjusted, fmt.Errorf("normalize: encode: %w", err)
	}
	if len(adjusted) > 0 {
		logger.Warn("llm.extract.normalized", "adjusted", adjusted)
	}
	return b, adjusted, nil
}
