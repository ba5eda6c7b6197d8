package booking

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"zapagenda/utils"
)

var (
	// ErrUnknownDateFormat means the text is not a recognizable date
	// expression.
	ErrUnknownDateFormat = errors.New("unknown date format")
	// ErrPastDate means the expression resolved to a calendar date
	// strictly before today.
	ErrPastDate = errors.New("date is in the past")
)

var dayMonthPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)

// ParseDateExpression resolves "hoje", "amanha"/"amanhã" or DD/MM[/YYYY]
// to a midnight instant in now's location. Dates strictly before today
// are rejected.
func ParseDateExpression(text string, now time.Time) (time.Time, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch norm := utils.NormalizeText(text); norm {
	case "hoje":
		return today, nil
	case "amanha":
		return today.AddDate(0, 0, 1), nil
	default:
		m := dayMonthPattern.FindStringSubmatch(norm)
		if m == nil {
			return time.Time{}, ErrUnknownDateFormat
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, ErrUnknownDateFormat
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		// Reject rollovers like 31/02.
		if date.Day() != day || date.Month() != time.Month(month) {
			return time.Time{}, ErrUnknownDateFormat
		}
		if date.Before(today) {
			return time.Time{}, ErrPastDate
		}
		return date, nil
	}
}

// ParseSlotLabel combines a stored YYYY-MM-DD date and an HH:MM label
// into a start instant in loc.
func ParseSlotLabel(date, label string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+label, loc)
}
