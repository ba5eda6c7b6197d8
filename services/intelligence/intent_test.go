package ai

import (
	"testing"

	"zapagenda/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntentBookingCommand(t *testing.T) {
	intent := ParseIntent(`{"action":"book","name":"Maria","service":"corte","date":"2026-09-11","time":"14:40"}`)
	require.Equal(t, models.IntentBook, intent.Kind)
	require.NotNil(t, intent.Book)
	assert.Equal(t, "Maria", intent.Book.Name)
	assert.Equal(t, "corte", intent.Book.Service)
	assert.Equal(t, "2026-09-11", intent.Book.Date)
	assert.Equal(t, "14:40", intent.Book.Time)
}

func TestParseIntentFencedJSON(t *testing.T) {
	raw := "```json\n{\"action\":\"book\",\"name\":\"Ana\",\"service\":\"manicure\",\"date\":\"2026-09-11\",\"time\":\"10:00\"}\n```"
	intent := ParseIntent(raw)
	require.Equal(t, models.IntentBook, intent.Kind)
	assert.Equal(t, "Ana", intent.Book.Name)
}

func TestParseIntentPortugueseAction(t *testing.T) {
	intent := ParseIntent(`{"action":"AGENDAR","service":"corte","date":"2026-09-11","time":"10:00"}`)
	assert.Equal(t, models.IntentBook, intent.Kind)
}

func TestParseIntentFallsBackToText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain text", raw: "Olá! Como posso ajudar?"},
		{name: "broken json", raw: `{"action":"book",`},
		{name: "unknown action", raw: `{"action":"cancel","date":"2026-09-11","time":"10:00"}`},
		{name: "missing date", raw: `{"action":"book","time":"10:00"}`},
		{name: "missing time", raw: `{"action":"book","date":"2026-09-11"}`},
		{name: "empty", raw: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			intent := ParseIntent(tc.raw)
			assert.Equal(t, models.IntentText, intent.Kind)
			assert.Equal(t, tc.raw, intent.Text)
			assert.Nil(t, intent.Book)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	knowledge := map[string]string{
		"bio":           "Salão no centro",
		"servico_corte": "Corte feminino, 40min",
	}
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "oi"},
		{Role: models.RoleAssistant, Content: "Olá! Como posso ajudar?"},
		{Role: models.RoleUser, Content: "quero agendar"},
	}

	prompt := BuildPrompt("", knowledge, history)

	assert.Contains(t, prompt, "assistente virtual")
	assert.Contains(t, prompt, "- bio: Salão no centro")
	assert.Contains(t, prompt, "- servico_corte: Corte feminino, 40min")
	assert.Contains(t, prompt, "Usuário: quero agendar")
	assert.True(t, len(prompt) > 0 && prompt[len(prompt)-1] == ':', "prompt must end with the assistant cue")

	custom := BuildPrompt("Prompt customizado.", nil, nil)
	assert.Contains(t, custom, "Prompt customizado.")
	assert.NotContains(t, custom, "assistente virtual")
}
