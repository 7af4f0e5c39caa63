package entity

import (
	"fmt"
	"time"
)

// InputKind describes how a question's answer is collected and normalized.
type InputKind string

const (
	InputKindFreeText     InputKind = "free_text"
	InputKindLongText     InputKind = "long_text"
	InputKindURL          InputKind = "url"
	InputKindMultiURL     InputKind = "multi_url"
	InputKindTagList      InputKind = "tag_list"
	InputKindSingleChoice InputKind = "single_choice"
	InputKindMultiChoice  InputKind = "multi_choice"
)

// MaxMultiURLEntries caps how many URLs a multi_url answer may carry.
const MaxMultiURLEntries = 3

func (k InputKind) Validate() error {
	switch k {
	case InputKindFreeText, InputKindLongText, InputKindURL,
		InputKindMultiURL, InputKindTagList,
		InputKindSingleChoice, InputKindMultiChoice:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownInputKind, k)
	}
}

// IsChoice reports whether the kind selects from a predefined choice list.
func (k InputKind) IsChoice() bool {
	return k == InputKindSingleChoice || k == InputKindMultiChoice
}

// IsMultiValue reports whether the raw answer is a list of strings
// rather than a single string.
func (k InputKind) IsMultiValue() bool {
	return k == InputKindMultiURL || k == InputKindTagList || k == InputKindMultiChoice
}

// QuestionDefinition is one step of the onboarding sequence.
// Definitions are loaded at process start and immutable thereafter.
type QuestionDefinition struct {
	ID             string    `json:"id"`
	PromptTemplate string    `json:"question"`
	Placeholder    string    `json:"placeholder,omitempty"`
	Label          string    `json:"label,omitempty"`
	InputKind      InputKind `json:"type"`
	Choices        []string  `json:"options,omitempty"`
}

// Phase is the current stage of a conversation.
type Phase string

const (
	PhaseTypingQuestion Phase = "typing_question"
	PhaseAwaitingInput  Phase = "awaiting_input"
	PhaseProcessing     Phase = "processing"
	PhaseSubmitting     Phase = "submitting"
	PhaseComplete       Phase = "complete"
)

// SubmissionOutcome records the result of forwarding the answer map to
// the webhook. Set at most once per conversation unless the user
// explicitly retries.
type SubmissionOutcome struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

// Conversation is one complete run of the onboarding wizard, from the
// first question to the submission outcome.
//
// Answers holds one normalized value per completed question, keyed by
// question id. Its contents always cover exactly the first Position
// questions of the sequence, so question order doubles as insertion
// order. Submitted is the one-shot latch guarding the webhook call.
type Conversation struct {
	ID             string             `json:"id"`
	Position       int                `json:"position"`
	Phase          Phase              `json:"phase"`
	Answers        map[string]string  `json:"answers"`
	Revealed       string             `json:"revealed"`
	Submitted      bool               `json:"submitted"`
	LastSubmission *SubmissionOutcome `json:"last_submission,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// AnswerMap returns a copy of the collected answers as a flat
// id -> value object, the exact shape forwarded to the webhook.
func (c *Conversation) AnswerMap() map[string]string {
	out := make(map[string]string, len(c.Answers))
	for id, v := range c.Answers {
		out[id] = v
	}
	return out
}

// Clone returns a deep copy sharing no mutable state with the
// receiver. The store hands out clones so that readers never touch
// the instance timer callbacks are mutating.
func (c *Conversation) Clone() *Conversation {
	copied := *c
	copied.Answers = c.AnswerMap()
	if c.LastSubmission != nil {
		outcome := *c.LastSubmission
		copied.LastSubmission = &outcome
	}
	return &copied
}
