package conversation

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/config"
	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/artin-ai/onboarding-backend/internal/store"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// WebhookConnector forwards a completed answer map downstream and
// reports the translated {code, text} outcome.
type WebhookConnector interface {
	Submit(ctx context.Context, answers map[string]string) (entity.RelayResponse, error)
}

// Usecase drives onboarding conversations: it owns the question
// sequence, the per-conversation timers and the submission latch, and
// persists state through the conversation store.
type Usecase struct {
	seq     *Sequencer
	store   store.ConversationStore
	webhook WebhookConnector
	cfg     config.ConversationConfig
	logger  *zap.Logger

	runtimes sync.Map // conversation id -> *runtime
}

// runtime holds the live, non-persisted side of a conversation: the
// mutex serializing its event handling and any armed timers. One
// conversation runs on one logical thread of control; the mutex is
// what enforces that against HTTP handlers and timer callbacks.
type runtime struct {
	mu        sync.Mutex
	typer     *Typewriter
	procTimer *time.Timer
}

func NewUsecase(
	questions []entity.QuestionDefinition,
	convStore store.ConversationStore,
	webhook WebhookConnector,
	cfg config.ConversationConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		seq:     NewSequencer(questions),
		store:   convStore,
		webhook: webhook,
		cfg:     cfg,
		logger:  logger,
	}
}

// Sequencer exposes the question sequence for read-only use (prompt
// rendering in handlers, profile assembly).
func (u *Usecase) Sequencer() *Sequencer {
	return u.seq
}

// Start creates a conversation and begins typing the first prompt.
func (u *Usecase) Start(ctx context.Context) (*entity.Conversation, error) {
	conv := &entity.Conversation{
		ID:        uuid.NewString(),
		Position:  0,
		Phase:     entity.PhaseTypingQuestion,
		Answers:   make(map[string]string),
		CreatedAt: time.Now(),
	}

	if err := u.store.Set(ctx, conv); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	ctxzap.Info(ctx, "conversation started",
		zap.String("conversation_id", conv.ID),
		zap.Int("total_questions", u.seq.Len()),
	)

	u.startTyping(conv.ID, conv.Position, conv.Answers)

	return conv, nil
}

// Get returns the conversation and, while it is still running, the
// definition of its current question.
func (u *Usecase) Get(ctx context.Context, id string) (*entity.Conversation, *entity.QuestionDefinition, error) {
	rt := u.runtimeFor(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if conv.Position >= u.seq.Len() {
		return conv, nil, nil
	}

	q, err := u.seq.Question(conv.Position)
	if err != nil {
		return nil, nil, err
	}
	return conv, &q, nil
}

// SubmitAnswer validates and records one answer for the current
// question, then moves the conversation into processing. Rejected
// values leave the state untouched.
func (u *Usecase) SubmitAnswer(ctx context.Context, id string, req entity.SubmitAnswerRequest) (*entity.Conversation, error) {
	rt := u.runtimeFor(id)
	rt.mu.Lock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}

	if conv.Phase == entity.PhaseComplete {
		rt.mu.Unlock()
		return nil, entity.ErrConversationComplete
	}
	if conv.Phase != entity.PhaseAwaitingInput {
		rt.mu.Unlock()
		return nil, fmt.Errorf("%w: phase is %s", entity.ErrNotAwaitingInput, conv.Phase)
	}

	q, err := u.seq.Question(conv.Position)
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}

	value, err := u.seq.Normalize(q, req)
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}

	conv.Answers[q.ID] = value
	effect, err := Reduce(conv, u.seq.Len(), Event{Type: EventAnswerAccepted})
	if err != nil {
		delete(conv.Answers, q.ID)
		rt.mu.Unlock()
		return nil, err
	}

	if err := u.store.Set(ctx, conv); err != nil {
		rt.mu.Unlock()
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	ctxzap.Info(ctx, "answer recorded",
		zap.String("conversation_id", id),
		zap.String("question_id", q.ID),
		zap.Int("position", conv.Position),
	)

	rt.mu.Unlock()
	u.runEffect(id, effect)

	return conv, nil
}

// Retry re-invokes the webhook with the identical, unmodified answer
// map. Only valid once the conversation is complete; answers and
// position are never reset.
func (u *Usecase) Retry(ctx context.Context, id string) (*entity.Conversation, error) {
	rt := u.runtimeFor(id)
	rt.mu.Lock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}

	effect, err := Reduce(conv, u.seq.Len(), Event{Type: EventRetryRequested})
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}
	rt.mu.Unlock()

	ctxzap.Info(ctx, "manual submission retry requested",
		zap.String("conversation_id", id),
	)

	u.runEffect(id, effect)

	return u.store.Get(ctx, id)
}

// Profile assembles the answered questions in question order.
func (u *Usecase) Profile(ctx context.Context, id string) (*entity.ProfileDTO, error) {
	rt := u.runtimeFor(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &entity.ProfileDTO{
		ConversationID: conv.ID,
		LastSubmission: conv.LastSubmission,
	}
	for i := 0; i < conv.Position; i++ {
		q, err := u.seq.Question(i)
		if err != nil {
			return nil, err
		}
		profile.Entries = append(profile.Entries, entity.ProfileEntry{
			ID:     q.ID,
			Label:  q.Label,
			Answer: conv.Answers[q.ID],
		})
	}

	return profile, nil
}

// Discard drops the conversation and cancels any pending timers.
func (u *Usecase) Discard(ctx context.Context, id string) error {
	rt := u.runtimeFor(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.typer != nil {
		rt.typer.Stop()
	}
	if rt.procTimer != nil {
		rt.procTimer.Stop()
	}
	u.runtimes.Delete(id)

	return u.store.Delete(ctx, id)
}

func (u *Usecase) runtimeFor(id string) *runtime {
	v, _ := u.runtimes.LoadOrStore(id, &runtime{})
	return v.(*runtime)
}

// bgCtx builds the context used by timer callbacks, which outlive the
// HTTP request that armed them.
func (u *Usecase) bgCtx(id string) context.Context {
	return ctxzap.ToContext(context.Background(), u.logger.With(
		zap.String("conversation_id", id),
	))
}

// apply locks the conversation, runs one event through the reducer and
// persists the result. Events for discarded or expired conversations
// are dropped.
func (u *Usecase) apply(id string, evt Event) (Effect, bool) {
	ctx := u.bgCtx(id)
	rt := u.runtimeFor(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		ctxzap.Debug(ctx, "dropping event for missing conversation",
			zap.String("event", string(evt.Type)),
		)
		return EffectNone, false
	}

	effect, err := Reduce(conv, u.seq.Len(), evt)
	if err != nil {
		ctxzap.Warn(ctx, "event rejected",
			zap.String("event", string(evt.Type)),
			zap.Error(err),
		)
		return EffectNone, false
	}

	if err := u.store.Set(ctx, conv); err != nil {
		ctxzap.Error(ctx, "failed to save conversation", zap.Error(err))
		return EffectNone, false
	}

	return effect, true
}

func (u *Usecase) runEffect(id string, effect Effect) {
	switch effect {
	case EffectStartTyping:
		ctx := u.bgCtx(id)
		conv, err := u.store.Get(ctx, id)
		if err != nil {
			return
		}
		u.startTyping(id, conv.Position, conv.Answers)

	case EffectScheduleProcessing:
		rt := u.runtimeFor(id)
		rt.mu.Lock()
		rt.procTimer = time.AfterFunc(u.cfg.ProcessingDelay, func() {
			effect, ok := u.apply(id, Event{Type: EventProcessingElapsed})
			if ok {
				u.runEffect(id, effect)
			}
		})
		rt.mu.Unlock()

	case EffectSubmit:
		u.submit(id)
	}
}

// startTyping arms the typewriter for the question at the given
// position, superseding any previous animation.
func (u *Usecase) startTyping(id string, position int, answers map[string]string) {
	ctx := u.bgCtx(id)

	q, err := u.seq.Question(position)
	if err != nil {
		ctxzap.Error(ctx, "typing requested past the end of the sequence", zap.Error(err))
		return
	}
	prompt := u.seq.RenderPrompt(q, answers)

	rt := u.runtimeFor(id)
	rt.mu.Lock()
	if rt.typer != nil {
		rt.typer.Stop()
	}
	rt.typer = NewTypewriter(
		prompt,
		u.cfg.TypingInterval,
		func(prefix string) { u.setRevealed(id, prefix) },
		func() {
			effect, ok := u.apply(id, Event{Type: EventTypingFinished})
			if ok {
				u.runEffect(id, effect)
			}
		},
	)
	rt.typer.Start()
	rt.mu.Unlock()
}

// setRevealed tracks the typewriter's progress. This is presentation
// state, not a state machine transition, so it bypasses the reducer.
func (u *Usecase) setRevealed(id string, prefix string) {
	ctx := u.bgCtx(id)
	rt := u.runtimeFor(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		return
	}
	if conv.Phase != entity.PhaseTypingQuestion {
		return
	}
	conv.Revealed = prefix
	_ = u.store.Set(ctx, conv)
}

// submit forwards the answer map to the webhook and records the
// outcome. Callers reach this through EffectSubmit only, so the
// exactly-once guarantee for the automatic path is already enforced by
// the reducer's latch.
func (u *Usecase) submit(id string) {
	ctx := u.bgCtx(id)

	if _, ok := u.apply(id, Event{Type: EventSubmissionStarted}); !ok {
		return
	}

	conv, err := u.store.Get(ctx, id)
	if err != nil {
		return
	}
	answers := conv.AnswerMap()

	resp, submitErr := u.webhook.Submit(ctx, answers)

	outcome := &entity.SubmissionOutcome{
		Succeeded: submitErr == nil && resp.Code == http.StatusOK,
		Message:   resp.Text,
	}
	if outcome.Succeeded {
		ctxzap.Info(ctx, "onboarding answers submitted")
	} else {
		ctxzap.Error(ctx, "onboarding submission failed",
			zap.Int("code", resp.Code),
			zap.String("reason", resp.Text),
			zap.Error(submitErr),
		)
	}

	u.apply(id, Event{Type: EventSubmissionFinished, Outcome: outcome})
}
