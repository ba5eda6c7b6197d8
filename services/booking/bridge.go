package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zapagenda/models"
	ai "zapagenda/services/intelligence"
	"zapagenda/services/settings"
)

// runBridge owns a turn with no active manual conversation: the message
// goes to the extractor and its output is decoded once into either a
// text reply or a booking command. A command with a time that is no
// longer free triggers exactly one corrective re-invocation before the
// free-slot list is surfaced as plain text.
func (e *DefaultBookingEngine) runBridge(ctx context.Context, snap *models.Settings, phone, text string, now time.Time) (string, error) {
	history, err := e.History.Get(ctx, phone)
	if err != nil {
		return "", &UpstreamError{Op: "load chat history", Err: err}
	}
	history = append(history, models.ChatMessage{Role: models.RoleUser, Content: text})

	raw, err := e.Extractor.GenerateReply(ctx, history, snap.Knowledge)
	if err != nil {
		return "", &UpstreamError{Op: "extractor", Err: err}
	}

	reply, err := e.applyIntent(ctx, snap, phone, history, ai.ParseIntent(raw), now, true)
	if err != nil {
		return "", err
	}

	history = append(history, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	if err := e.History.Save(ctx, phone, history); err != nil {
		return "", &UpstreamError{Op: "save chat history", Err: err}
	}
	return reply, nil
}

// applyIntent executes one decoded extractor result. retry guards the
// one-shot corrective loop: the re-invoked result is applied with
// retry=false so a second conflict cannot recurse.
func (e *DefaultBookingEngine) applyIntent(ctx context.Context, snap *models.Settings, phone string, history []models.ChatMessage, intent models.Intent, now time.Time, retry bool) (string, error) {
	if intent.Kind == models.IntentText {
		return intent.Text, nil
	}

	cmd := intent.Book
	duration := settings.DurationFor(snap, cmd.Service)

	day, err := time.ParseInLocation("2006-01-02", cmd.Date, e.Loc)
	if err != nil {
		return replyBadDate, nil
	}
	today := now.In(e.Loc)
	if day.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, e.Loc)) {
		return replyPastDate, nil
	}

	slots, err := e.slotsForDate(ctx, snap, day, duration, now)
	if err != nil {
		return "", err
	}
	labels := models.SlotLabels(slots)

	wanted := normalizeSlotLabel(cmd.Time)
	if !containsLabel(labels, wanted) {
		if retry {
			return e.retryWithCorrection(ctx, snap, phone, history, cmd, labels, now)
		}
		if len(labels) == 0 {
			return replyNoSlots, nil
		}
		return replyBadTime(labels), nil
	}

	// The extractor may book before asking the client's name; in that
	// case the manual dialogue finishes the collection.
	if strings.TrimSpace(cmd.Name) == "" {
		st := &models.ConversationState{
			Phone:           phone,
			Step:            models.StepAskName,
			ServiceName:     cmd.Service,
			DurationMinutes: duration,
			Date:            cmd.Date,
			Slots:           labels,
			PendingTime:     wanted,
		}
		if err := e.States.Set(ctx, st); err != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: err}
		}
		return replyAskName, nil
	}

	start, err := ParseSlotLabel(cmd.Date, wanted, e.Loc)
	if err != nil {
		return replyBadTime(labels), nil
	}
	appt, err := e.createAppointment(ctx, cmd.Name, cmd.Service, phone, start, duration)
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		fresh, ferr := e.slotsForDate(ctx, snap, day, duration, now)
		if ferr != nil {
			return "", ferr
		}
		freshLabels := models.SlotLabels(fresh)
		if retry {
			return e.retryWithCorrection(ctx, snap, phone, history, cmd, freshLabels, now)
		}
		if len(freshLabels) == 0 {
			return replyNoSlots, nil
		}
		return replySlotTaken(freshLabels), nil
	}
	if err != nil {
		return "", err
	}
	return replyBooked(appt), nil
}

// retryWithCorrection re-invokes the extractor once with a system
// message carrying the actual free slots.
func (e *DefaultBookingEngine) retryWithCorrection(ctx context.Context, snap *models.Settings, phone string, history []models.ChatMessage, cmd *models.BookingCommand, labels []string, now time.Time) (string, error) {
	available := "Sem vagas nesse dia."
	if len(labels) > 0 {
		available = strings.Join(labels, ", ")
	}
	correction := fmt.Sprintf("Sistema: o horário %s de %s está indisponível. Horários livres: [ %s ].",
		cmd.Time, formatDate(cmd.Date), available)
	history = append(history, models.ChatMessage{Role: models.RoleUser, Content: correction})

	raw, err := e.Extractor.GenerateReply(ctx, history, snap.Knowledge)
	if err != nil {
		return "", &UpstreamError{Op: "extractor retry", Err: err}
	}
	return e.applyIntent(ctx, snap, phone, history, ai.ParseIntent(raw), now, false)
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
