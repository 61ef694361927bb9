package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders booking e-tickets as PDF.
type TicketService struct {
	Bookings  repositories.BookingRepository
	RequestID string
	Timeout   time.Duration
	Loader    func(context.Context, int64) (models.BookingDetail, error)
}

func (s TicketService) Generate(ctx context.Context, bookingID int64) ([]byte, string, error) {
	if bookingID <= 0 {
		return nil, "", domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	d, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", domain.Internal(err)
	}
	utils.LogEvent(s.RequestID, "ticket", "generate", fmt.Sprintf("booking_id=%d", bookingID))

	pdf, name, err := buildTicketPDF(d)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "could not render ticket", Err: err}
	}
	return pdf, name, nil
}

func (s TicketService) load(ctx context.Context, id int64) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()
	return s.Bookings.GetDetail(ctx, id)
}

func buildTicketPDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pricePerSeat := 0.0
	if d.SeatsBooked > 0 {
		pricePerSeat = d.TotalPrice / float64(d.SeatsBooked)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : #%d", d.ID),
		fmt.Sprintf("Passenger      : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Email          : %s", safe(d.PassengerEmail, "-")),
		fmt.Sprintf("Route          : %s (%s -> %s)", safe(d.RouteName, "-"), safe(d.Source, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Bus            : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Departure      : %s", utils.FormatDateTime(d.DepartureTime)),
		fmt.Sprintf("Arrival        : %s", utils.FormatDateTime(d.ArrivalTime)),
		fmt.Sprintf("Seats          : %d", d.SeatsBooked),
		fmt.Sprintf("Price per seat : %s", utils.FormatCurrency(pricePerSeat)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total: "+utils.FormatCurrency(d.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this ticket when boarding. Valid only for the journey shown above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TICKET_%d_%s.pdf", d.ID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
