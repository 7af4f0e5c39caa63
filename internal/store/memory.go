package store

import (
	"context"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps conversations in-process with TTL eviction.
// A background janitor reclaims abandoned conversations.
//
// Get and Set work on detached clones, so a conversation read by one
// goroutine is never the instance another goroutine is mutating.
// Callers mutate their copy and persist it with Set.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	return v.(*entity.Conversation).Clone(), nil
}

func (s *MemoryStore) Set(_ context.Context, conv *entity.Conversation) error {
	conv.UpdatedAt = time.Now()
	s.cache.SetDefault(conv.ID, conv.Clone())
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
