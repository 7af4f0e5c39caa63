package store

import (
	"context"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

// ConversationStore defines conversation persistence. Conversations are
// ephemeral session state; implementations may discard them after their
// TTL elapses.
type ConversationStore interface {
	// Get retrieves a conversation by id
	Get(ctx context.Context, id string) (*entity.Conversation, error)

	// Set saves a conversation, refreshing its TTL
	Set(ctx context.Context, conv *entity.Conversation) error

	// Delete removes a conversation
	Delete(ctx context.Context, id string) error
}
