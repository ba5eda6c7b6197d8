package settings

import (
	"regexp"
	"strconv"
	"strings"

	"zapagenda/models"
	"zapagenda/utils"
)

const serviceKeyPrefix = "servico_"

var minutesPattern = regexp.MustCompile(`(\d+)\s*min`)

// DurationFor resolves the slot duration for a service name. Knowledge
// entries like "servico_mechas" = "Mechas completas, 120min, R$250"
// override the configured default when the service name matches the key
// suffix.
func DurationFor(s *models.Settings, serviceName string) int {
	name := utils.NormalizeText(serviceName)
	if name == "" {
		return s.DefaultDuration
	}

	for key, value := range s.Knowledge {
		if !strings.HasPrefix(key, serviceKeyPrefix) {
			continue
		}
		suffix := strings.ReplaceAll(strings.TrimPrefix(key, serviceKeyPrefix), "_", " ")
		if !strings.Contains(name, suffix) && !strings.Contains(suffix, name) {
			continue
		}
		if m := minutesPattern.FindStringSubmatch(utils.NormalizeText(value)); m != nil {
			if minutes, err := strconv.Atoi(m[1]); err == nil && minutes > 0 {
				return minutes
			}
		}
	}
	return s.DefaultDuration
}
