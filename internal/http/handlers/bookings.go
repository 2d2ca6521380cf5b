package handlers

import (
	"net/http"
	"strconv"

	"eventscrm/internal/http/middleware"
	"eventscrm/internal/repositories"
	"eventscrm/internal/services"
	"eventscrm/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		ClientRepo:       repositories.ClientRepository{},
		BookingRepo:      repositories.BookingRepository{},
		NotificationRepo: repositories.NotificationRepository{},
		Conflicts:        services.ConflictService{EventRepo: repositories.EventRepository{}},
		RequestID:        middleware.GetRequestID(c),
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	res, err := bookingService(c).CreateBooking(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || quoteID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_booking_id", "booking id must be a positive integer", nil)
		return
	}

	d, err := repositories.BookingRepository{}.GetDetail(quoteID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	event := gin.H{
		"id":         d.Event.ID,
		"title":      d.Event.Title,
		"startDate":  utils.FormatDate(d.Event.StartDate),
		"startTime":  d.Event.StartTime,
		"endTime":    d.Event.EndTime,
		"status":     d.Event.Status,
		"location":   d.Event.Location,
		"guestCount": d.Event.GuestCount,
		"eventType":  d.Event.EventType,
	}
	if d.Event.EndDate != nil {
		event["endDate"] = utils.FormatDate(*d.Event.EndDate)
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": gin.H{
			"id":          d.Quote.ID,
			"reference":   d.Quote.Reference,
			"status":      d.Quote.Status,
			"totalAmount": d.Quote.TotalAmount,
			"eventDate":   utils.FormatDate(d.Quote.EventDate),
		},
		"client": gin.H{
			"id":    d.Client.ID,
			"name":  d.Client.Name,
			"email": d.Client.Email,
		},
		"event":    event,
		"services": d.Services,
	})
}

// GET /api/bookings/:id/confirmation
func GetBookingConfirmationPDF(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || quoteID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_booking_id", "booking id must be a positive integer", nil)
		return
	}

	svc := services.DocsService{
		BookingRepo: repositories.BookingRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateConfirmation(quoteID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
