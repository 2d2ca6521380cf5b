package handlers

import (
	"net/http"
	"strconv"

	"eventscrm/internal/domain"
	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
	"eventscrm/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/events?start=YYYY-MM-DD&end=YYYY-MM-DD
func ListEvents(c *gin.Context) {
	rg, err := scheduling.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	records, err := repositories.EventRepository{}.ListBetween(rg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		e := gin.H{
			"id":         rec.Event.ID,
			"quoteId":    rec.Event.QuoteID,
			"title":      rec.Event.Title,
			"startDate":  utils.FormatDate(rec.Event.StartDate),
			"startTime":  rec.Event.StartTime,
			"endTime":    rec.Event.EndTime,
			"status":     rec.Event.Status,
			"location":   rec.Event.Location,
			"guestCount": rec.Event.GuestCount,
			"eventType":  rec.Event.EventType,
			"clientName": rec.ClientName,
		}
		if rec.Event.EndDate != nil {
			e["endDate"] = utils.FormatDate(*rec.Event.EndDate)
		}
		out = append(out, e)
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

type eventStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/events/:id/status
//
// Admin transition. Accepts canonical and legacy spellings; the row stays in
// place on cancellation so history and the calendar's CANCELLED state remain.
func UpdateEventStatus(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_event_id", "event id must be a positive integer", nil)
		return
	}

	var req eventStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, ok := domain.ParseEventStatus(req.Status)
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown event status", nil)
		return
	}

	if err := (repositories.EventRepository{}).UpdateStatus(eventID, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventId": eventID, "status": status})
}
