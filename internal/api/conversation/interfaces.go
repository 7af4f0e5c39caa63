package conversation

import (
	"context"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

// ConversationUsecase drives the wizard's server-side state machine.
type ConversationUsecase interface {
	Start(ctx context.Context) (*entity.Conversation, error)
	Get(ctx context.Context, id string) (*entity.Conversation, *entity.QuestionDefinition, error)
	SubmitAnswer(ctx context.Context, id string, req entity.SubmitAnswerRequest) (*entity.Conversation, error)
	Retry(ctx context.Context, id string) (*entity.Conversation, error)
	Profile(ctx context.Context, id string) (*entity.ProfileDTO, error)
	Discard(ctx context.Context, id string) error
}

// PromptRenderer resolves the display text of a question against the
// recorded answers.
type PromptRenderer interface {
	RenderPrompt(q entity.QuestionDefinition, answers map[string]string) string
	Len() int
}
