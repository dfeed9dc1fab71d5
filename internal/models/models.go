package models

// Mode selects which enhancement agent handles a request.
const (
	ModeImage = "image"
	ModeVideo = "video"
)

// Influences are optional creative steering attributes supplied by the user.
type Influences struct {
	Genre     string `json:"genre,omitempty"`
	Reference string `json:"reference,omitempty"`
	Style     string `json:"style,omitempty"`
}

// Empty reports whether no influence field is set.
func (i *Influences) Empty() bool {
	return i == nil || (i.Genre == "" && i.Reference == "" && i.Style == "")
}

// EnhancementRequest is a validated prompt-enhancement request.
type EnhancementRequest struct {
	OriginalPrompt string      `json:"original_prompt"`
	Mode           string      `json:"mode"` // image, video
	Influences     *Influences `json:"influences,omitempty"`
}

// EnhancementResult is the outcome of one enhancement pass. Error is set if
// and only if a stage failed; a degraded result still carries the original
// prompt so the caller always gets something usable.
type EnhancementResult struct {
	OriginalPrompt  string      `json:"original_prompt"`
	EnhancedPrompt  string      `json:"enhanced_prompt"`
	ReferenceImages []string    `json:"reference_images"`
	Mode            string      `json:"mode"`
	AgentUsed       string      `json:"agent_used"` // text_to_image, text_to_video, or ""
	Influences      *Influences `json:"influences,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// HistoryEntry records one completed enhancement on an enhancer instance.
type HistoryEntry struct {
	OriginalPrompt  string   `json:"original_prompt"`
	EnhancedPrompt  string   `json:"enhanced_prompt"`
	ReferenceImages []string `json:"reference_images"`
}

// SearchRecord records one reference-image search, successful or not.
type SearchRecord struct {
	Query string   `json:"query"`
	URLs  []string `json:"urls"`
}

// GeneratePromptRequest is the wire form of POST /api/generate-prompt.
// Description is an alias for Prompt kept for older clients.
type GeneratePromptRequest struct {
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
	Mode        string `json:"mode"`
	Genre       string `json:"genre"`
	Reference   string `json:"reference"`
	Style       string `json:"style"`
}

// GenerateRequest is the wire form of POST /api/generate (job pipeline).
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is the wire form of the job pipeline response.
type GenerateResponse struct {
	Status         string  `json:"status"` // success, error
	Result         string  `json:"result,omitempty"`
	Message        string  `json:"message,omitempty"`
	RequestID      string  `json:"request_id"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
}
