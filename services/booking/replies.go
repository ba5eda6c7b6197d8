package booking

import (
	"fmt"
	"strings"
	"time"

	"zapagenda/models"
)

// User-facing replies, pt-BR.
const (
	replyAskName        = "Perfeito, vamos agendar! 😊 Qual é o seu nome?"
	replyAskDate        = "Para qual dia você quer agendar? (hoje, amanhã ou DD/MM)"
	replyBadDate        = "Não entendi a data. 🙈 Pode mandar de novo? (hoje, amanhã ou DD/MM)"
	replyPastDate       = "Essa data já passou. Pode escolher outra? (hoje, amanhã ou DD/MM)"
	replyNoSlots        = "Não temos horários livres nesse dia. 😥 Pode escolher outra data? (hoje, amanhã ou DD/MM)"
	replyCanceled       = "Tudo bem, cancelei por aqui. Se precisar, é só chamar! 😉"
	replyTechnicalIssue = "Tivemos um problema técnico por aqui. 🙏 Pode tentar de novo em instantes?"
	replyKnowledgeSaved = "✅ Salvo!"
)

func replyAskService(name string) string {
	return fmt.Sprintf("Obrigado, %s! Qual serviço você deseja?", firstName(name))
}

func replyAskTime(date string, labels []string) string {
	return fmt.Sprintf("Tenho estes horários para %s:\n%s\n\nQual prefere?", formatDate(date), strings.Join(labels, ", "))
}

func replyBadTime(labels []string) string {
	return fmt.Sprintf("Não encontrei esse horário na lista. Os horários livres são: %s", strings.Join(labels, ", "))
}

func replySlotTaken(labels []string) string {
	return fmt.Sprintf("Esse horário acabou de ser reservado. 😥 Estes continuam livres: %s", strings.Join(labels, ", "))
}

func replyConfirmed(name string) string {
	return fmt.Sprintf("Presença confirmada! ✅ Até já, %s!", firstName(name))
}

func replyBooked(appt *models.Appointment) string {
	return fmt.Sprintf("✅ *Agendamento Realizado!*\n\n👤 %s\n🗓️ %s às %s\n✂️ %s\n\nStatus: Agendado",
		appt.ClientName,
		appt.Start.Format("02/01/2006"),
		appt.Start.Format("15:04"),
		appt.ServiceName,
	)
}

// ReminderMessage builds the pre-appointment reminder text.
func ReminderMessage(clientName, serviceName string, start time.Time) string {
	return fmt.Sprintf("Olá %s! 👋\n\nLembrete automático: seu horário está chegando!\n\n🗓️ *%s*\n⏰ *%s*\n✂️ *%s*\n\nPosso confirmar sua presença? (Responda \"Sim\" para confirmar)",
		firstName(clientName),
		start.Format("02/01/2006"),
		start.Format("15:04"),
		serviceName,
	)
}

func firstName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return "Cliente"
	}
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// formatDate renders a stored YYYY-MM-DD date as DD/MM/YYYY.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
