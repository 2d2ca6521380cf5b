package services

import (
	"bytes"
	"fmt"
	"strings"

	"eventscrm/internal/repositories"
	"eventscrm/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking confirmation document for a quote.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string

	// Loader overrides the repository lookup in tests.
	Loader func(quoteID int64) (repositories.BookingDetail, error)
}

func (s DocsService) load(quoteID int64) (repositories.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(quoteID)
	}
	return s.BookingRepo.GetDetail(quoteID)
}

// GenerateConfirmation builds the PDF returned inline by the API.
func (s DocsService) GenerateConfirmation(quoteID int64) ([]byte, string, error) {
	d, err := s.load(quoteID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("quote_id=%d", quoteID))
	return buildConfirmationPDF(d)
}

func buildConfirmationPDF(d repositories.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	dates := utils.FormatDate(d.Event.StartDate)
	if d.Event.EndDate != nil {
		dates += " - " + utils.FormatDate(*d.Event.EndDate)
	}
	times := d.Event.StartTime
	if d.Event.EndTime != "" {
		times += " - " + d.Event.EndTime
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference    : %s", safe(d.Quote.Reference, "-")),
		fmt.Sprintf("Client       : %s", safe(d.Client.Name, "-")),
		fmt.Sprintf("Event        : %s", safe(d.Event.Title, "-")),
		fmt.Sprintf("Type         : %s", safe(d.Event.EventType, "-")),
		fmt.Sprintf("Date(s)      : %s", dates),
		fmt.Sprintf("Time         : %s", safe(times, "-")),
		fmt.Sprintf("Location     : %s", safe(d.Event.Location, "-")),
		fmt.Sprintf("Guests       : %d", d.Event.GuestCount),
		fmt.Sprintf("Status       : %s", string(d.Event.Status)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Services")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, svc := range d.Services {
		pdf.Cell(0, 6, fmt.Sprintf("Service #%d  x%d  @ %s  =  %s",
			svc.ServiceID, svc.Quantity,
			utils.FormatCents(svc.FinalPrice),
			utils.FormatCents(svc.Subtotal())))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", utils.FormatCents(d.Quote.TotalAmount)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this confirmation covers the services listed above. Changes to dates or services require a new quote.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("confirmation-%s.pdf", safeFilenamePart(d.Quote.Reference))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "booking"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return replacer.Replace(s)
}
