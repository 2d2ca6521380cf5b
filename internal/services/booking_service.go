package services

import (
	"fmt"
	"strings"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
	"eventscrm/internal/repositories"
	"eventscrm/internal/scheduling"
	"eventscrm/internal/utils"

	"github.com/google/uuid"
)

// BookingService is the single write path for bookings: it validates input,
// runs the advisory conflict check, persists the Quote -> QuoteService(s) ->
// Event aggregate in one transaction, then dispatches best-effort
// notifications.
type BookingService struct {
	ClientRepo       repositories.ClientRepository
	BookingRepo      repositories.BookingRepository
	NotificationRepo repositories.NotificationRepository
	Conflicts        ConflictService
	RequestID        string

	// NewReference overrides quote reference generation in tests.
	NewReference func() string
}

type NewClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ServiceLineInput struct {
	ServiceID  int64 `json:"serviceId"`
	Quantity   int   `json:"quantity"`
	FinalPrice int64 `json:"finalPrice"`
}

type BookingInput struct {
	ClientID  int64           `json:"clientId"`
	NewClient *NewClientInput `json:"newClient"`
	VendorID  int64           `json:"vendorId"`

	Services []ServiceLineInput `json:"services"`

	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`

	TotalOverride *int64 `json:"totalOverride"`

	Location         string `json:"location"`
	GuestCount       int    `json:"guestCount"`
	EventType        string `json:"eventType"`
	EmergencyContact string `json:"emergencyContact"`
}

type BookingResult struct {
	QuoteID   int64             `json:"quoteId"`
	EventID   int64             `json:"eventId"`
	Reference string            `json:"reference"`
	Total     int64             `json:"total"`
	Warnings  []models.Conflict `json:"warnings,omitempty"`
}

// CreateBooking runs the full booking flow. Validation and the conflict
// decision happen before any write; on rejection zero rows exist.
func (s BookingService) CreateBooking(in BookingInput) (BookingResult, error) {
	rg, err := s.validate(in)
	if err != nil {
		return BookingResult{}, err
	}

	decision, err := s.Conflicts.CanCreate(rg, 0)
	if err != nil {
		return BookingResult{}, err
	}
	if !decision.Allowed {
		return BookingResult{}, domain.ConflictError{Resource: "booking", Msg: decision.Reason}
	}

	client, err := s.resolveClient(in)
	if err != nil {
		return BookingResult{}, err
	}

	total := int64(0)
	for _, line := range in.Services {
		total += int64(line.Quantity) * line.FinalPrice
	}
	if in.TotalOverride != nil {
		total = *in.TotalOverride
	}

	services := make([]models.QuoteService, 0, len(in.Services))
	for _, line := range in.Services {
		services = append(services, models.QuoteService{
			ServiceID:  line.ServiceID,
			Quantity:   line.Quantity,
			FinalPrice: line.FinalPrice,
		})
	}

	event := models.Event{
		Title:            utils.NormalizeSpace(in.Title),
		StartDate:        rg.Start,
		StartTime:        strings.TrimSpace(in.StartTime),
		EndTime:          strings.TrimSpace(in.EndTime),
		Status:           domain.EventConfirmed,
		Location:         strings.TrimSpace(in.Location),
		GuestCount:       in.GuestCount,
		EventType:        strings.TrimSpace(in.EventType),
		EmergencyContact: strings.TrimSpace(in.EmergencyContact),
	}
	if in.EndDate != "" {
		end := rg.End
		event.EndDate = &end
	}

	agg := repositories.BookingAggregate{
		Quote: models.Quote{
			Reference:   s.reference(),
			ClientID:    client.ID,
			VendorID:    in.VendorID,
			Status:      domain.QuoteApproved,
			TotalAmount: total,
			EventDate:   rg.Start,
		},
		Services: services,
		Event:    event,
	}

	agg, err = s.BookingRepo.CreateAggregate(agg)
	if err != nil {
		return BookingResult{}, err
	}

	s.notify(agg, client)

	return BookingResult{
		QuoteID:   agg.Quote.ID,
		EventID:   agg.Event.ID,
		Reference: agg.Quote.Reference,
		Total:     agg.Quote.TotalAmount,
		Warnings:  decision.Conflicts,
	}, nil
}

func (s BookingService) validate(in BookingInput) (scheduling.DateRange, error) {
	if in.ClientID <= 0 && in.NewClient == nil {
		return scheduling.DateRange{}, domain.ValidationError{Field: "client", Msg: "select an existing client or provide a new one"}
	}
	if len(in.Services) == 0 {
		return scheduling.DateRange{}, domain.ValidationError{Field: "services", Msg: "at least one service is required"}
	}
	for i, line := range in.Services {
		if line.ServiceID <= 0 {
			return scheduling.DateRange{}, domain.ValidationError{Field: fmt.Sprintf("services[%d].serviceId", i), Msg: "invalid id"}
		}
		if line.Quantity <= 0 {
			return scheduling.DateRange{}, domain.ValidationError{Field: fmt.Sprintf("services[%d].quantity", i), Msg: "must be positive"}
		}
		if line.FinalPrice < 0 {
			return scheduling.DateRange{}, domain.ValidationError{Field: fmt.Sprintf("services[%d].finalPrice", i), Msg: "must not be negative"}
		}
	}
	if strings.TrimSpace(in.StartDate) == "" {
		return scheduling.DateRange{}, domain.ValidationError{Field: "startDate", Msg: "required"}
	}
	if !utils.ValidTimeHM(in.StartTime) {
		return scheduling.DateRange{}, domain.ValidationError{Field: "startTime", Msg: "required, expected HH:MM"}
	}
	if in.EndTime != "" {
		if in.EndDate == "" {
			return scheduling.DateRange{}, domain.ValidationError{Field: "endTime", Msg: "only meaningful together with endDate"}
		}
		if !utils.ValidTimeHM(in.EndTime) {
			return scheduling.DateRange{}, domain.ValidationError{Field: "endTime", Msg: "expected HH:MM"}
		}
	}
	return scheduling.ParseDateRange(in.StartDate, in.EndDate)
}

func (s BookingService) resolveClient(in BookingInput) (models.Client, error) {
	if in.ClientID > 0 {
		return s.ClientRepo.GetByID(in.ClientID)
	}
	return s.ClientRepo.Create(models.Client{
		Name:  in.NewClient.Name,
		Email: in.NewClient.Email,
		Phone: in.NewClient.Phone,
	})
}

// notify dispatches the vendor and client notifications. Failures are logged
// and swallowed: the booking is already committed and must stand.
func (s BookingService) notify(agg repositories.BookingAggregate, client models.Client) {
	meta := fmt.Sprintf(`{"quoteId":%d,"eventId":%d}`, agg.Quote.ID, agg.Event.ID)
	when := utils.FormatDate(agg.Event.StartDate)
	title := "Booking confirmed"

	if agg.Quote.VendorID > 0 {
		msg := fmt.Sprintf("New booking %s for %s on %s", agg.Quote.Reference, client.Name, when)
		if err := s.NotificationRepo.Create(agg.Quote.VendorID, "booking_created", title, msg, meta); err != nil {
			utils.LogEvent(s.RequestID, "booking", "notify_vendor_failed", err.Error())
		}
	}
	if client.ID > 0 {
		msg := fmt.Sprintf("Your booking %s on %s is confirmed", agg.Quote.Reference, when)
		if err := s.NotificationRepo.Create(client.ID, "booking_created", title, msg, meta); err != nil {
			utils.LogEvent(s.RequestID, "booking", "notify_client_failed", err.Error())
		}
	}
}

func (s BookingService) reference() string {
	if s.NewReference != nil {
		return s.NewReference()
	}
	return "Q-" + strings.ToUpper(uuid.NewString()[:8])
}
