package model

// Summary is the outcome of one summarisation request.
type Summary struct {
	Language        string `json:"language"`
	Text            string `json:"summary"`
	HTML            string `json:"html,omitempty"`
	Attempts        int    `json:"attempts"`
	Retried         bool   `json:"retried"`
	LeakageDetected bool   `json:"leakage_detected"`
	RetryAccepted   bool   `json:"retry_accepted"`
	InputChars      int    `json:"input_chars"`
	CompressedChars int    `json:"compressed_chars"`
	Truncated       bool   `json:"truncated"`
	Cached          bool   `json:"cached"`
}
