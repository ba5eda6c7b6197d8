package handlers

import (
	"errors"
	"net/http"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"
	"zapagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler exposes the admin CRUD over appointments.
type AppointmentHandler struct {
	Repo appointmentRepo.AppointmentRepository
	Loc  *time.Location
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo, Loc: loc}
}

// ListAppointmentsHandler handles GET /api/appointments. An optional
// from/to pair (RFC 3339) narrows the window.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")

	var (
		appts []models.Appointment
		err   error
	)
	if fromRaw != "" && toRaw != "" {
		from, ferr := time.Parse(time.RFC3339, fromRaw)
		to, terr := time.Parse(time.RFC3339, toRaw)
		if ferr != nil || terr != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid window", "from/to must be RFC 3339 timestamps")
			return
		}
		appts, err = h.Repo.ListByWindow(c.Request.Context(), from, to)
	} else {
		appts, err = h.Repo.ListAll(c.Request.Context())
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

type createAppointmentRequest struct {
	ClientName      string    `json:"client_name" binding:"required"`
	ClientPhone     string    `json:"client_phone"`
	ServiceName     string    `json:"service_name" binding:"required"`
	Start           time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
}

// CreateAppointmentHandler handles POST /api/appointments: manual
// bookings from the dashboard go through the same conflict-checked
// create as the chat flows.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid appointment payload", err.Error())
		return
	}

	start := req.Start.In(h.Loc)
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		ClientName:  req.ClientName,
		ClientPhone: utils.NormalizePhone(req.ClientPhone),
		ServiceName: req.ServiceName,
		Status:      models.StatusScheduled,
		Start:       start,
		End:         start.Add(time.Duration(req.DurationMinutes) * time.Minute),
		CreatedAt:   time.Now(),
	}

	err := h.Repo.Create(c.Request.Context(), appt)
	if errors.Is(err, appointmentRepo.ErrSlotConflict) {
		utils.JSONError(c, http.StatusConflict, "slot already booked", "the requested window overlaps an existing appointment")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create appointment", err.Error())
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// DeleteAppointmentHandler handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) DeleteAppointmentHandler(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
