package conversation

import (
	"fmt"
	"strings"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

// Sequencer owns the ordered question definitions and produces
// render-ready prompt text. The sequence is immutable after creation;
// the growing answer map lives on the conversation itself.
type Sequencer struct {
	questions []entity.QuestionDefinition
}

func NewSequencer(questions []entity.QuestionDefinition) *Sequencer {
	return &Sequencer{questions: questions}
}

// Len returns the number of questions in the sequence.
func (s *Sequencer) Len() int {
	return len(s.questions)
}

// Question returns the definition at the given position. Positions at
// or past the end indicate a state machine bug in the caller; the
// completion check must come first.
func (s *Sequencer) Question(position int) (entity.QuestionDefinition, error) {
	if position < 0 || position >= len(s.questions) {
		return entity.QuestionDefinition{}, fmt.Errorf("%w: %d of %d", entity.ErrQuestionOutOfRange, position, len(s.questions))
	}
	return s.questions[position], nil
}

// RenderPrompt substitutes every {id} placeholder in the prompt with
// the recorded answer for that id. Placeholders without a recorded
// answer are left as literal text; the load-time sequence validation
// guarantees referenced questions come strictly earlier, so in
// practice every placeholder resolves by the time its question is
// reached.
func (s *Sequencer) RenderPrompt(q entity.QuestionDefinition, answers map[string]string) string {
	text := q.PromptTemplate
	for id, value := range answers {
		text = strings.ReplaceAll(text, "{"+id+"}", value)
	}
	return text
}

// Normalize converts a raw submission into the stored answer string
// for the question's input kind. It returns ErrEmptyAnswer when the
// normalized result is empty.
func (s *Sequencer) Normalize(q entity.QuestionDefinition, req entity.SubmitAnswerRequest) (string, error) {
	if q.InputKind.IsMultiValue() {
		if req.Value != "" {
			return "", fmt.Errorf("%w: %s expects a list of values", entity.ErrValueNotAllowed, q.InputKind)
		}
		return s.normalizeList(q, req.Values)
	}

	if len(req.Values) > 0 {
		return "", fmt.Errorf("%w: %s expects a single value", entity.ErrValueNotAllowed, q.InputKind)
	}
	return s.normalizeSingle(q, req.Value)
}

func (s *Sequencer) normalizeSingle(q entity.QuestionDefinition, raw string) (string, error) {
	switch q.InputKind {
	case entity.InputKindFreeText, entity.InputKindLongText, entity.InputKindURL:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "", fmt.Errorf("%w: %s", entity.ErrEmptyAnswer, q.ID)
		}
		return trimmed, nil

	case entity.InputKindSingleChoice:
		// Selections pass through untouched; an empty selection is the
		// only rejection condition.
		if raw == "" {
			return "", fmt.Errorf("%w: %s", entity.ErrEmptyAnswer, q.ID)
		}
		if !containsChoice(q.Choices, raw) {
			return "", fmt.Errorf("%w: %q", entity.ErrUnknownChoice, raw)
		}
		return raw, nil

	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnknownInputKind, q.InputKind)
	}
}

func (s *Sequencer) normalizeList(q entity.QuestionDefinition, raw []string) (string, error) {
	switch q.InputKind {
	case entity.InputKindMultiURL:
		if len(raw) > entity.MaxMultiURLEntries {
			return "", fmt.Errorf("%w: at most %d URLs", entity.ErrTooManyValues, entity.MaxMultiURLEntries)
		}
		var kept []string
		for _, v := range raw {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, strings.TrimSpace(v))
			}
		}
		if len(kept) == 0 {
			return "", fmt.Errorf("%w: %s", entity.ErrEmptyAnswer, q.ID)
		}
		return strings.Join(kept, ", "), nil

	case entity.InputKindTagList:
		seen := make(map[string]bool, len(raw))
		var kept []string
		for _, v := range raw {
			tag := strings.TrimSpace(v)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			kept = append(kept, tag)
		}
		if len(kept) == 0 {
			return "", fmt.Errorf("%w: %s", entity.ErrEmptyAnswer, q.ID)
		}
		return strings.Join(kept, ", "), nil

	case entity.InputKindMultiChoice:
		// Joined in selection order, not choice-list order.
		for _, v := range raw {
			if !containsChoice(q.Choices, v) {
				return "", fmt.Errorf("%w: %q", entity.ErrUnknownChoice, v)
			}
		}
		if len(raw) == 0 {
			return "", fmt.Errorf("%w: %s", entity.ErrEmptyAnswer, q.ID)
		}
		return strings.Join(raw, ", "), nil

	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnknownInputKind, q.InputKind)
	}
}

func containsChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
