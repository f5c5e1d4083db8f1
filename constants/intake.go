package constants

// IntakeSource records where a raw biodata blob came from.
type IntakeSource string

const (
	IntakeSourceWebProcess  IntakeSource = "web_process"  // pasted into the web form
	IntakeSourceWhatsApp    IntakeSource = "whatsapp"     // forwarded chat export
	IntakeSourceFileUpload  IntakeSource = "file_upload"  // uploaded document
	IntakeSourceBatchIngest IntakeSource = "batch_ingest" // filesystem batch ingest
)

// IntakeStatus is the canonical status for raw intake rows.
// Stable values; store these exact strings.
type IntakeStatus string

const (
	IntakeStatusPending   IntakeStatus = "PENDING"   // created, not yet processed
	IntakeStatusProcessed IntakeStatus = "PROCESSED" // preview produced
	IntakeStatusAccepted  IntakeStatus = "ACCEPTED"  // review accepted, final profile saved
	IntakeStatusFailed    IntakeStatus = "FAILED"    // terminal failure
)

// ExtractionSource identifies which strategy produced a preview.
type ExtractionSource string

const (
	ExtractionSourceLLM             ExtractionSource = "llm"
	ExtractionSourceRules           ExtractionSource = "regex"
	ExtractionSourceTrainingExample ExtractionSource = "training_example"
)
