package conversation

import (
	"github.com/artin-ai/onboarding-backend/internal/entity"
)

func toConversationDTO(conv *entity.Conversation, q *entity.QuestionDefinition, renderer PromptRenderer) *entity.ConversationDTO {
	dto := &entity.ConversationDTO{
		ID:             conv.ID,
		Phase:          conv.Phase,
		Position:       conv.Position,
		Total:          renderer.Len(),
		Answers:        conv.AnswerMap(),
		LastSubmission: conv.LastSubmission,
	}

	if q != nil {
		dto.Question = &entity.QuestionDTO{
			ID:          q.ID,
			Prompt:      renderer.RenderPrompt(*q, conv.Answers),
			Placeholder: q.Placeholder,
			Label:       q.Label,
			InputKind:   q.InputKind,
			Choices:     q.Choices,
		}
	}

	if conv.Phase == entity.PhaseTypingQuestion {
		dto.Revealed = conv.Revealed
	}

	return dto
}
