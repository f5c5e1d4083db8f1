package llm

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
)

// FewShotCap bounds how many correction examples are rendered into the
// conversation, regardless of how many the caller supplies.
const FewShotCap = 3

// Message is one chat turn sent to the model endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildSystemPrompt composes the fixed extraction instruction. It
// enumerates the exact closed field vocabulary and the formatting rules;
// the model must not invent values or keys.
func BuildSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a precise data extraction assistant for matrimonial biodata. ")
	b.WriteString("Extract structured information from the provided text into a flat JSON object with exactly these keys:\n")
	for _, k := range constants.FieldKeys() {
		b.WriteString("- ")
		b.WriteString(k)
		switch k {
		case constants.FieldDOB:
			b.WriteString(" (format: YYYY-MM-DD)")
		case constants.FieldAge:
			b.WriteString(" (calculate if dob is present)")
		case constants.FieldLookingFor:
			b.WriteString(` (value must be "Bride" or "Groom" based on context)`)
		case constants.FieldFamilyDetails:
			b.WriteString(" (summarize family info)")
		case constants.FieldBio:
			b.WriteString(" (the full text or a summary)")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nRULES:\n")
	b.WriteString("1. Extract ONLY information explicitly present in the text. Do not infer or hallucinate.\n")
	b.WriteString(`2. If a field is not found, set it to an empty string "".` + "\n")
	b.WriteString(`3. Normalize values where possible (e.g. convert "5ft 4in" to "5'4\"", standardize dates to YYYY-MM-DD).` + "\n")
	b.WriteString("4. Return ONLY the raw JSON object. Do not include markdown formatting or explanation.")
	return b.String()
}

// BuildMessages renders the full conversation: system instruction, then
// the correction examples as alternating user/assistant pairs
// (most-recent-first, capped at FewShotCap), then the target text.
func BuildMessages(text string, examples []extract.CorrectionExample) []Message {
	msgs := []Message{{Role: "system", Content: BuildSystemPrompt()}}

	n := len(examples)
	if n > FewShotCap {
		n = FewShotCap
	}
	for _, ex := range examples[:n] {
		corrected, err := json.Marshal(ex.Corrected)
		if err != nil {
			continue
		}
		msgs = append(msgs,
			Message{Role: "user", Content: ex.RawText},
			Message{Role: "assistant", Content: string(corrected)},
		)
	}

	msgs = append(msgs, Message{Role: "user", Content: text})
	return msgs
}
