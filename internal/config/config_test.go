package config

import (
	"testing"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestions_DefaultSequence(t *testing.T) {
	require.NoError(t, ValidateQuestions(defaultQuestions))
}

func TestValidateQuestions_DuplicateID(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "name", PromptTemplate: "a", InputKind: entity.InputKindFreeText},
		{ID: "name", PromptTemplate: "b", InputKind: entity.InputKindFreeText},
	})
	assert.ErrorIs(t, err, entity.ErrDuplicateQuestion)
}

func TestValidateQuestions_MissingID(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{PromptTemplate: "a", InputKind: entity.InputKindFreeText},
	})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestValidateQuestions_ForwardReference(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "greet", PromptTemplate: "Hi {name}!", InputKind: entity.InputKindFreeText},
		{ID: "name", PromptTemplate: "Your name?", InputKind: entity.InputKindFreeText},
	})
	assert.ErrorIs(t, err, entity.ErrForwardReference)
}

func TestValidateQuestions_SelfReference(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "name", PromptTemplate: "Hi {name}!", InputKind: entity.InputKindFreeText},
	})
	assert.ErrorIs(t, err, entity.ErrForwardReference)
}

func TestValidateQuestions_BackwardReferenceOK(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "name", PromptTemplate: "Your name?", InputKind: entity.InputKindFreeText},
		{ID: "greet", PromptTemplate: "Hi {name}!", InputKind: entity.InputKindFreeText},
	})
	assert.NoError(t, err)
}

func TestValidateQuestions_ChoiceKindsNeedChoices(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "size", PromptTemplate: "Company size?", InputKind: entity.InputKindSingleChoice},
	})
	assert.ErrorIs(t, err, entity.ErrMissingChoices)

	err = ValidateQuestions([]entity.QuestionDefinition{
		{ID: "channels", PromptTemplate: "Channels?", InputKind: entity.InputKindMultiChoice},
	})
	assert.ErrorIs(t, err, entity.ErrMissingChoices)
}

func TestValidateQuestions_UnknownInputKind(t *testing.T) {
	err := ValidateQuestions([]entity.QuestionDefinition{
		{ID: "x", PromptTemplate: "a", InputKind: entity.InputKind("dropdown")},
	})
	assert.ErrorIs(t, err, entity.ErrUnknownInputKind)
}

func TestValidateConfig_Timing(t *testing.T) {
	valid := ConversationConfig{
		TypingInterval:  30 * time.Millisecond,
		ProcessingDelay: 2500 * time.Millisecond,
		TTL:             time.Hour,
		CleanupInterval: 10 * time.Minute,
	}

	require.NoError(t, validateConfig(&Config{ConversationCfg: valid}))

	bad := valid
	bad.TypingInterval = 0
	assert.Error(t, validateConfig(&Config{ConversationCfg: bad}))

	bad = valid
	bad.ProcessingDelay = -time.Second
	assert.Error(t, validateConfig(&Config{ConversationCfg: bad}))

	bad = valid
	bad.TTL = time.Second
	assert.Error(t, validateConfig(&Config{ConversationCfg: bad}))
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("prod"))
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("local"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
