package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"busadmin/internal/codegen"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

// DocsService renders booking e-tickets and trip manifests as PDF.
type DocsService struct {
	Bookings  repositories.BookingRepository
	Trips     repositories.TripRepository
	Buses     repositories.BusRepository
	Drivers   repositories.DriverRepository
	RequestID string

	// Loaders replace the repositories in tests.
	LoadBooking  func(ctx context.Context, id int64) (models.Booking, error)
	LoadManifest func(ctx context.Context, tripID int64) (manifestData, error)
}

type manifestData struct {
	Trip     models.Trip
	Bus      models.Bus
	Driver   models.Driver
	Bookings []models.Booking
}

// BookingETicket renders one ticket for all seats of a booking. Cancelled
// bookings have no ticket.
func (s DocsService) BookingETicket(ctx context.Context, bookingID int64) ([]byte, string, error) {
	load := s.LoadBooking
	if load == nil {
		load = s.Bookings.GetByID
	}
	b, err := load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if b.BookingStatus == models.BookingCancelled {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "cancelled bookings have no e-ticket"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "e-ticket rendered", "booking_id", bookingID)
	return buildETicketPDF(b)
}

func (s DocsService) TripManifest(ctx context.Context, tripID int64) ([]byte, string, error) {
	load := s.LoadManifest
	if load == nil {
		load = s.loadManifest
	}
	d, err := load(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", "manifest rendered", "trip_id", tripID, "bookings", len(d.Bookings))
	return buildManifestPDF(d)
}

func (s DocsService) loadManifest(ctx context.Context, tripID int64) (manifestData, error) {
	var d manifestData
	var err error
	if d.Trip, err = s.Trips.GetByID(ctx, tripID); err != nil {
		return d, err
	}
	if d.Bus, err = s.Buses.GetByID(ctx, d.Trip.BusID); err != nil && !domain.IsNotFound(err) {
		return d, err
	}
	if d.Driver, err = s.Drivers.GetByID(ctx, d.Trip.DriverID); err != nil && !domain.IsNotFound(err) {
		return d, err
	}
	d.Bookings, err = s.Bookings.ListByTrip(ctx, tripID)
	return d, err
}

// pdfText folds Vietnamese letters to ASCII; the core PDF fonts only carry
// Latin-1.
func pdfText(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	var b strings.Builder
	for _, r := range v {
		folded := codegen.Normalize(string(r))
		if string(r) != strings.ToLower(string(r)) {
			folded = strings.ToUpper(folded)
		}
		b.WriteString(folded)
	}
	return b.String()
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+b.BookingCode, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking code : %s", pdfText(b.BookingCode)),
		fmt.Sprintf("Passenger    : %s", pdfText(b.CustomerName)),
		fmt.Sprintf("Phone        : %s", pdfText(b.CustomerPhone)),
		fmt.Sprintf("Trip         : %s", pdfText(b.TripCode)),
		fmt.Sprintf("Route        : %s", pdfText(b.RouteName)),
		fmt.Sprintf("Departure    : %s %s", pdfText(b.DepartureDate), pdfText(b.DepartureTime)),
		fmt.Sprintf("Pickup       : %s", pdfText(b.PickupStation)),
		fmt.Sprintf("Dropoff      : %s", pdfText(b.DropoffStation)),
		fmt.Sprintf("Seats        : %s", pdfText(strings.Join(b.SeatNumbers, ", "))),
		fmt.Sprintf("Total        : %s", utils.FormatVND(b.TotalAmount)),
		fmt.Sprintf("Payment      : %s", pdfText(string(b.PaymentStatus)+" "+b.PaymentMethod)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please be at the pickup point 15 minutes before departure and show this ticket to the driver.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", utils.SafeFilenamePart(b.BookingCode))
	return buf.Bytes(), filename, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Manifest "+d.Trip.TripCode, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP MANIFEST")
	pdf.Ln(12)

	routeName := ""
	if d.Trip.Route != nil {
		routeName = d.Trip.Route.Name
	}
	pdf.SetFont("Helvetica", "", 12)
	for _, s := range []string{
		fmt.Sprintf("Trip      : %s", pdfText(d.Trip.TripCode)),
		fmt.Sprintf("Route     : %s", pdfText(routeName)),
		fmt.Sprintf("Departure : %s %s", pdfText(d.Trip.DepartureDate), pdfText(d.Trip.DepartureTime)),
		fmt.Sprintf("Bus       : %s (%d seats)", pdfText(d.Bus.LicensePlate), d.Bus.SeatCount),
		fmt.Sprintf("Driver    : %s %s", pdfText(d.Driver.FullName), pdfText(d.Driver.Phone)),
		fmt.Sprintf("Printed   : %s", time.Now().Format("2006-01-02 15:04")),
	} {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{10, 32, 50, 30, 28, 40}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Booking", "Passenger", "Phone", "Seats", "Pickup"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	seats := 0
	for i, b := range d.Bookings {
		seats += len(b.SeatNumbers)
		row := []string{
			fmt.Sprintf("%d", i+1),
			pdfText(b.BookingCode),
			pdfText(b.CustomerName),
			pdfText(b.CustomerPhone),
			pdfText(strings.Join(b.SeatNumbers, ",")),
			pdfText(b.PickupStation),
		}
		for j, v := range row {
			pdf.CellFormat(widths[j], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Bookings: %d   Seats: %d", len(d.Bookings), seats))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%s_%s.pdf", utils.SafeFilenamePart(d.Trip.TripCode), utils.SafeFilenamePart(d.Trip.DepartureDate))
	return buf.Bytes(), filename, nil
}
