package booking

import (
	"strings"

	"zapagenda/utils"
)

var bookingIntentWords = []string{"agendar", "agendamento", "marcar", "horario"}

var cancelWords = map[string]bool{
	"cancelar": true,
	"sair":     true,
}

var confirmationWords = map[string]bool{
	"sim":            true,
	"confirmo":       true,
	"confirmar":      true,
	"confirmado":     true,
	"ok":             true,
	"pode confirmar": true,
}

func isBookingIntent(text string) bool {
	norm := utils.NormalizeText(text)
	for _, w := range bookingIntentWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}

func isCancelKeyword(text string) bool {
	return cancelWords[strings.Trim(utils.NormalizeText(text), "!. ")]
}

func isConfirmationWord(text string) bool {
	return confirmationWords[strings.Trim(utils.NormalizeText(text), "!. ")]
}
