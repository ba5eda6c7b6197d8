package ai

import (
	"sort"
	"strings"

	"zapagenda/models"
)

const defaultSystemPrompt = `Você é a assistente virtual de um salão. Responda em português, de forma educada e objetiva.
Quando o cliente quiser agendar e você já tiver nome, serviço, data e horário, responda SOMENTE com um objeto JSON no formato:
{"action":"book","name":"...","service":"...","date":"AAAA-MM-DD","time":"HH:MM"}
Se faltar alguma informação, pergunte por ela em texto normal.`

// BuildPrompt assembles the extractor prompt: system instructions, the
// business knowledge entries, then the role-tagged history.
func BuildPrompt(systemPrompt string, knowledge map[string]string, history []models.ChatMessage) string {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)

	if len(knowledge) > 0 {
		sb.WriteString("\n\nInformações do negócio:\n")
		keys := make([]string, 0, len(knowledge))
		for k := range knowledge {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString("- ")
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(knowledge[k])
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	for _, m := range history {
		if m.Role == models.RoleUser {
			sb.WriteString("Usuário: ")
		} else {
			sb.WriteString("Assistente: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistente:")
	return sb.String()
}
