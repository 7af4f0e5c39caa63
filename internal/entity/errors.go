package entity

import "errors"

// Domain errors
var (
	// Conversation errors
	ErrConversationNotFound    = errors.New("conversation not found")
	ErrConversationComplete    = errors.New("conversation is already complete")
	ErrConversationNotComplete = errors.New("conversation is not complete yet")
	ErrNotAwaitingInput        = errors.New("conversation is not awaiting input")

	// Question sequence errors
	ErrQuestionOutOfRange = errors.New("question position out of range")
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrForwardReference   = errors.New("placeholder references a later question")
	ErrMissingChoices     = errors.New("choice question has no choices")
	ErrUnknownInputKind   = errors.New("unknown input kind")

	// Answer validation errors
	ErrEmptyAnswer     = errors.New("answer is empty after normalization")
	ErrUnknownChoice   = errors.New("answer is not one of the offered choices")
	ErrTooManyValues   = errors.New("answer has too many values")
	ErrValueNotAllowed = errors.New("value shape does not match input kind")

	// Request validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Submission errors
	ErrWebhookNotConfigured = errors.New("webhook URL is not configured")
)
