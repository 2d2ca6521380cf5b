package handlers

import (
	"net/http"
	"strconv"

	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
	"eventscrm/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/availability?start=YYYY-MM-DD&end=YYYY-MM-DD&excludeEventId=N
//
// Returns the aggregated status for the range, the overlapping events, and
// the booking decision. end defaults to start; excludeEventId skips the event
// being edited.
func CheckAvailability(c *gin.Context) {
	rg, err := scheduling.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var excludeEventID int64
	if raw := c.Query("excludeEventId"); raw != "" {
		excludeEventID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || excludeEventID <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "excludeEventId must be a positive integer", nil)
			return
		}
	}

	svc := services.ConflictService{EventRepo: repositories.EventRepository{}}
	status, conflicts, err := svc.CheckAvailability(rg, excludeEventID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	decision := services.Decide(conflicts)

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"conflicts": conflicts,
		"allowed":   decision.Allowed,
		"reason":    decision.Reason,
	})
}
