package handlers

import (
	"net/http"
	"strings"

	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
	"eventscrm/internal/services"
	"eventscrm/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/calendar?view=month|week|day&anchor=YYYY-MM-DD
//
// Navigation is stateless: prev/next only changes the anchor.
func GetCalendarView(c *gin.Context) {
	view := scheduling.CalendarView(strings.ToLower(strings.TrimSpace(c.DefaultQuery("view", "month"))))
	switch view {
	case scheduling.ViewMonth, scheduling.ViewWeek, scheduling.ViewDay:
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "view must be month, week or day", nil)
		return
	}

	anchorRaw := c.Query("anchor")
	if anchorRaw == "" {
		anchorRaw = utils.FormatDate(utils.NowUTC())
	}
	anchor, err := utils.ParseDate(anchorRaw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "anchor must be YYYY-MM-DD", nil)
		return
	}

	svc := services.CalendarService{EventRepo: repositories.EventRepository{}}
	cells, err := svc.Project(view, anchor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(cells))
	for _, cell := range cells {
		out = append(out, gin.H{
			"date":       utils.FormatDate(cell.Date),
			"inMonth":    cell.InMonth,
			"status":     cell.Status,
			"events":     cell.Events,
			"eventCount": cell.EventCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"view":   view,
		"anchor": utils.FormatDate(anchor),
		"cells":  out,
	})
}
