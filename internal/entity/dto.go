package entity

// SubmitAnswerRequest carries one raw answer for the current question.
// Single-string kinds use Value; multi-value kinds use Values.
type SubmitAnswerRequest struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// QuestionDTO is the wire view of the current question.
type QuestionDTO struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Placeholder string    `json:"placeholder,omitempty"`
	Label       string    `json:"label,omitempty"`
	InputKind   InputKind `json:"input_kind"`
	Choices     []string  `json:"choices,omitempty"`
}

// ConversationDTO is the wire view of a conversation's state.
type ConversationDTO struct {
	ID             string             `json:"conversation_id"`
	Phase          Phase              `json:"phase"`
	Position       int                `json:"position"`
	Total          int                `json:"total_questions"`
	Question       *QuestionDTO       `json:"question,omitempty"`
	Revealed       string             `json:"revealed,omitempty"`
	Answers        map[string]string  `json:"answers"`
	LastSubmission *SubmissionOutcome `json:"last_submission,omitempty"`
}

// ProfileEntry is one answered question in the profile summary,
// in question order.
type ProfileEntry struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Answer string `json:"answer"`
}

// ProfileDTO is the collected business profile shown after completion.
type ProfileDTO struct {
	ConversationID string             `json:"conversation_id"`
	Entries        []ProfileEntry     `json:"entries"`
	LastSubmission *SubmissionOutcome `json:"last_submission,omitempty"`
}

// RelayResponse is the {code, text} envelope the relay endpoint returns
// and the shape the wizard front end expects.
type RelayResponse struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

// ErrorResponse is the generic API error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResultFormat selects a profile export format.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
)
