package booking

import (
	"context"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	knowledgeRepo "zapagenda/database/repository/knowledge"
	"zapagenda/models"
	ai "zapagenda/services/intelligence"
	"zapagenda/services/settings"
)

// BookingEngine turns one inbound chat message into at most one reply,
// booking appointments along the way.
type BookingEngine interface {
	HandleInboundMessage(ctx context.Context, msg models.InboundMessage, now time.Time) (string, error)
}

// DefaultBookingEngine implements BookingEngine.
type DefaultBookingEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Knowledge    knowledgeRepo.KnowledgeRepository
	Settings     settings.Provider
	States       StateStore
	History      ai.HistoryStore
	Extractor    ai.Extractor
	Usage        UsageTracker
	Loc          *time.Location

	locks phoneLocker
}
