package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"zapagenda/models"
	"zapagenda/services/settings"
	"zapagenda/utils"
)

// advanceConversation applies one inbound message to an active manual
// conversation. Re-prompts keep the state on the same step; only a
// successful booking or an upstream failure leaves it.
func (e *DefaultBookingEngine) advanceConversation(ctx context.Context, snap *models.Settings, st *models.ConversationState, text string, now time.Time) (string, error) {
	switch st.Step {
	case models.StepAskName:
		name := strings.TrimSpace(text)
		if name == "" {
			return replyAskName, nil
		}
		st.ClientName = name
		// A bridge-seeded state may already carry everything else.
		if st.ServiceName != "" && st.Date != "" && st.PendingTime != "" {
			return e.bookLabel(ctx, snap, st, st.PendingTime, now)
		}
		st.Step = models.StepAskService
		if err := e.States.Set(ctx, st); err != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: err}
		}
		return replyAskService(name), nil

	case models.StepAskService:
		service := strings.TrimSpace(text)
		if service == "" {
			return replyAskService(st.ClientName), nil
		}
		st.ServiceName = service
		st.DurationMinutes = settings.DurationFor(snap, service)
		st.Step = models.StepAskDate
		if err := e.States.Set(ctx, st); err != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: err}
		}
		return replyAskDate, nil

	case models.StepAskDate:
		day, err := ParseDateExpression(text, now.In(e.Loc))
		if errors.Is(err, ErrPastDate) {
			return replyPastDate, nil
		}
		if err != nil {
			return replyBadDate, nil
		}
		slots, err := e.slotsForDate(ctx, snap, day, st.DurationMinutes, now)
		if err != nil {
			return "", err
		}
		if len(slots) == 0 {
			return replyNoSlots, nil
		}
		st.Date = day.Format("2006-01-02")
		st.Slots = models.SlotLabels(slots)
		st.Step = models.StepAskTime
		if err := e.States.Set(ctx, st); err != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: err}
		}
		return replyAskTime(st.Date, st.Slots), nil

	case models.StepAskTime:
		label := normalizeSlotLabel(text)
		if !st.OfferedSlot(label) {
			return replyBadTime(st.Slots), nil
		}
		return e.bookLabel(ctx, snap, st, label, now)
	}

	// Unknown step value, e.g. after a rollout change: drop the state.
	if err := e.States.Clear(ctx, st.Phone); err != nil {
		return "", &UpstreamError{Op: "clear conversation state", Err: err}
	}
	return replyTechnicalIssue, nil
}

// bookLabel commits the chosen slot. On a write-time conflict the user
// gets fresh availability and stays in the dialogue.
func (e *DefaultBookingEngine) bookLabel(ctx context.Context, snap *models.Settings, st *models.ConversationState, label string, now time.Time) (string, error) {
	start, err := ParseSlotLabel(st.Date, label, e.Loc)
	if err != nil {
		return replyBadTime(st.Slots), nil
	}

	appt, err := e.createAppointment(ctx, st.ClientName, st.ServiceName, st.Phone, start, st.DurationMinutes)
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, e.Loc)
		fresh, ferr := e.slotsForDate(ctx, snap, day, st.DurationMinutes, now)
		if ferr != nil {
			return "", ferr
		}
		if len(fresh) == 0 {
			st.Step = models.StepAskDate
			st.Date = ""
			st.Slots = nil
			st.PendingTime = ""
			if serr := e.States.Set(ctx, st); serr != nil {
				return "", &UpstreamError{Op: "save conversation state", Err: serr}
			}
			return replyNoSlots, nil
		}
		st.Step = models.StepAskTime
		st.Slots = models.SlotLabels(fresh)
		st.PendingTime = ""
		if serr := e.States.Set(ctx, st); serr != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: serr}
		}
		return replySlotTaken(st.Slots), nil
	}
	if err != nil {
		return "", err
	}

	if err := e.States.Clear(ctx, st.Phone); err != nil {
		return "", &UpstreamError{Op: "clear conversation state", Err: err}
	}
	return replyBooked(appt), nil
}

var slotLabelPattern = regexp.MustCompile(`^(\d{1,2})[:h](\d{2})$`)

// normalizeSlotLabel maps user spellings like "9:20" or "14h40" onto the
// HH:MM labels the engine offers.
func normalizeSlotLabel(text string) string {
	norm := utils.NormalizeText(text)
	m := slotLabelPattern.FindStringSubmatch(norm)
	if m == nil {
		return norm
	}
	hour, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", hour, m[2])
}
