package handlers

import (
	"net/http"

	"zapagenda/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the HTTP handlers so route registration can
// take a single dependency.
type HandlerBundle struct {
	Messages     *MessageHandler
	Appointments *AppointmentHandler
	Knowledge    *KnowledgeHandler
}

// HealthHandler reports the latest dependency health snapshot.
func (hb *HandlerBundle) HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
