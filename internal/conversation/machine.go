package conversation

import (
	"fmt"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

// EventType identifies a state machine input.
type EventType string

const (
	// EventTypingFinished fires when the typewriter reveals the last
	// character of the current prompt.
	EventTypingFinished EventType = "typing_finished"
	// EventAnswerAccepted fires after a submitted answer passed
	// normalization and was recorded.
	EventAnswerAccepted EventType = "answer_accepted"
	// EventProcessingElapsed fires when the simulated processing delay
	// runs out.
	EventProcessingElapsed EventType = "processing_elapsed"
	// EventSubmissionStarted fires when the webhook call begins.
	EventSubmissionStarted EventType = "submission_started"
	// EventSubmissionFinished carries the webhook call's outcome.
	EventSubmissionFinished EventType = "submission_finished"
	// EventRetryRequested fires on an explicit user retry after a
	// failed submission.
	EventRetryRequested EventType = "retry_requested"
)

// Event is one state machine input with its optional payload.
type Event struct {
	Type    EventType
	Outcome *entity.SubmissionOutcome
}

// Effect tells the caller what to schedule after a transition. Reduce
// itself never touches timers or the network.
type Effect int

const (
	EffectNone Effect = iota
	// EffectStartTyping starts the typewriter for the question at the
	// conversation's current position.
	EffectStartTyping
	// EffectScheduleProcessing arms the fixed processing delay timer.
	EffectScheduleProcessing
	// EffectSubmit triggers the webhook submission. Reduce returns it
	// at most once per conversation for the automatic path; only an
	// explicit retry event can produce it again.
	EffectSubmit
)

// Reduce applies one event to the conversation and reports the effect
// to run next. It is a pure transition function over the conversation
// fields; total is the question count of the sequence the conversation
// is running.
//
// The Submitted flag is the one-shot latch for the automatic
// submission: re-entering the complete phase (duplicate
// EventProcessingElapsed delivery, re-rendered state reads) can never
// produce a second EffectSubmit.
func Reduce(conv *entity.Conversation, total int, evt Event) (Effect, error) {
	switch evt.Type {
	case EventTypingFinished:
		if conv.Phase != entity.PhaseTypingQuestion {
			// A stale typewriter callback after the question changed;
			// nothing to do.
			return EffectNone, nil
		}
		conv.Phase = entity.PhaseAwaitingInput
		return EffectNone, nil

	case EventAnswerAccepted:
		if conv.Phase != entity.PhaseAwaitingInput {
			return EffectNone, fmt.Errorf("%w: phase is %s", entity.ErrNotAwaitingInput, conv.Phase)
		}
		conv.Position++
		conv.Phase = entity.PhaseProcessing
		return EffectScheduleProcessing, nil

	case EventProcessingElapsed:
		if conv.Phase != entity.PhaseProcessing {
			return EffectNone, nil
		}
		if conv.Position < total {
			conv.Phase = entity.PhaseTypingQuestion
			conv.Revealed = ""
			return EffectStartTyping, nil
		}
		conv.Phase = entity.PhaseComplete
		if conv.Submitted {
			return EffectNone, nil
		}
		conv.Submitted = true
		return EffectSubmit, nil

	case EventSubmissionStarted:
		if conv.Phase != entity.PhaseComplete {
			return EffectNone, nil
		}
		conv.Phase = entity.PhaseSubmitting
		return EffectNone, nil

	case EventSubmissionFinished:
		if conv.Phase != entity.PhaseSubmitting {
			return EffectNone, nil
		}
		conv.Phase = entity.PhaseComplete
		conv.LastSubmission = evt.Outcome
		return EffectNone, nil

	case EventRetryRequested:
		if conv.Phase != entity.PhaseComplete {
			return EffectNone, fmt.Errorf("%w: phase is %s", entity.ErrConversationNotComplete, conv.Phase)
		}
		return EffectSubmit, nil

	default:
		return EffectNone, fmt.Errorf("%w: unknown event %s", entity.ErrInvalidParameter, evt.Type)
	}
}
