package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"zapagenda/models"
	"zapagenda/utils"

	"go.uber.org/zap"
)

const adminAddPrefix = "!add "

// HandleInboundMessage is the single entry point for one chat turn.
// Messages from the same phone are processed strictly in order; an empty
// reply with a nil error means the turn produced nothing to send.
func (e *DefaultBookingEngine) HandleInboundMessage(ctx context.Context, msg models.InboundMessage, now time.Time) (string, error) {
	if msg.IsGroup || msg.IsStatus || msg.IsSelf {
		return "", nil
	}
	text := strings.TrimSpace(msg.Body)
	if text == "" {
		return "", nil
	}
	phone := utils.NormalizePhone(msg.From)
	if phone == "" {
		return "", nil
	}

	lock := e.locks.get(phone)
	lock.Lock()
	defer lock.Unlock()

	reply, err := e.handleTurn(ctx, phone, text, now)

	logger := utils.GetLogger()
	var policy *PolicyError
	if errors.As(err, &policy) {
		logger.Debug("message refused by policy", zap.String("phone", phone), zap.String("reason", policy.Reason))
		if policy.Silent {
			return "", nil
		}
		return reply, nil
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		// One safe fallback; conversation state was left untouched so
		// the user can retry without repeating earlier answers.
		logger.Error("turn failed upstream", zap.String("phone", phone), zap.Error(upstream))
		return replyTechnicalIssue, nil
	}
	if err != nil {
		logger.Error("turn failed", zap.String("phone", phone), zap.Error(err))
		return replyTechnicalIssue, nil
	}

	if reply != "" {
		day := now.In(e.Loc).Format("2006-01-02")
		if _, cerr := e.Usage.CountChars(ctx, day, len(reply)); cerr != nil {
			logger.Warn("char usage tracking failed", zap.Error(cerr))
		}
	}
	return reply, nil
}

func (e *DefaultBookingEngine) handleTurn(ctx context.Context, phone, text string, now time.Time) (string, error) {
	snap, err := e.Settings.Snapshot(ctx)
	if err != nil {
		return "", &UpstreamError{Op: "settings snapshot", Err: err}
	}

	if !snap.PhoneAllowed(phone) {
		return "", &PolicyError{Reason: "phone not in allow-list", Silent: true}
	}

	day := now.In(e.Loc).Format("2006-01-02")
	total, err := e.Usage.CountMessage(ctx, day)
	if err != nil {
		// Counting failures must not block the conversation.
		utils.GetLogger().Warn("message usage tracking failed", zap.Error(err))
	} else if total > int64(snap.DailyMessageLimit) {
		return "", &PolicyError{Reason: "daily message quota exceeded", Silent: true}
	}

	// Administrative commands bypass the state machine entirely.
	if strings.HasPrefix(strings.ToLower(text), adminAddPrefix) {
		return e.handleAdminAdd(ctx, text)
	}

	// Confirmation matching runs regardless of conversation state.
	if reply, handled, err := e.tryConfirmation(ctx, phone, text, now); err != nil {
		return "", err
	} else if handled {
		return reply, nil
	}

	st, err := e.States.Get(ctx, phone)
	if err != nil {
		return "", &UpstreamError{Op: "load conversation state", Err: err}
	}

	if st != nil {
		if isCancelKeyword(text) {
			if err := e.States.Clear(ctx, phone); err != nil {
				return "", &UpstreamError{Op: "clear conversation state", Err: err}
			}
			return replyCanceled, nil
		}
		return e.advanceConversation(ctx, snap, st, text, now)
	}

	if isBookingIntent(text) {
		st := &models.ConversationState{Phone: phone, Step: models.StepAskName}
		if err := e.States.Set(ctx, st); err != nil {
			return "", &UpstreamError{Op: "save conversation state", Err: err}
		}
		return replyAskName, nil
	}

	return e.runBridge(ctx, snap, phone, text, now)
}

// handleAdminAdd processes "!add chave=valor" knowledge writes from the
// chat channel.
func (e *DefaultBookingEngine) handleAdminAdd(ctx context.Context, text string) (string, error) {
	payload := strings.TrimSpace(text[len(adminAddPrefix):])
	parts := strings.SplitN(payload, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "Formato: !add chave=valor", nil
	}
	if err := e.Knowledge.Set(ctx, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
		return "", &UpstreamError{Op: "save knowledge entry", Err: err}
	}
	e.Settings.Invalidate()
	return replyKnowledgeSaved, nil
}
