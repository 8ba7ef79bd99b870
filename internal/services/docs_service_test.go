package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	svc := DocsService{
		LoadBooking: func(_ context.Context, id int64) (models.Booking, error) {
			return models.Booking{
				ID:            id,
				BookingCode:   "BK-0010",
				CustomerName:  "Nguyễn Văn Á",
				CustomerPhone: "0901234567",
				TripCode:      "TR-HNHP",
				RouteName:     "Hà Nội - Hải Phòng",
				DepartureDate: "2025-06-01",
				DepartureTime: "08:00",
				SeatNumbers:   []string{"1", "2"},
				TotalAmount:   500000,
				BookingStatus: models.BookingPaid,
				PaymentStatus: models.PaymentPaid,
			}, nil
		},
		LoadManifest: func(_ context.Context, tripID int64) (manifestData, error) {
			return manifestData{
				Trip:   models.Trip{ID: tripID, TripCode: "TR-HNHP", DepartureDate: "2025-06-01", DepartureTime: "08:00"},
				Bus:    models.Bus{LicensePlate: "29B-123.45", SeatCount: 29},
				Driver: models.Driver{FullName: "Trần Văn B"},
				Bookings: []models.Booking{
					{BookingCode: "BK-0010", CustomerName: "A", SeatNumbers: []string{"1", "2"}},
				},
			}, nil
		},
	}

	ticket, name, err := svc.BookingETicket(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ticket, []byte("%PDF")))
	assert.Equal(t, "ETICKET_BK-0010.pdf", name)

	manifest, name, err := svc.TripManifest(context.Background(), 3)
	require.NoError(t, err)
	assert.NotEmpty(t, manifest)
	assert.Equal(t, "MANIFEST_TR-HNHP_2025-06-01.pdf", name)
}

func TestDocsServiceCancelledBookingHasNoTicket(t *testing.T) {
	svc := DocsService{LoadBooking: func(_ context.Context, id int64) (models.Booking, error) {
		return models.Booking{ID: id, BookingStatus: models.BookingCancelled}, nil
	}}

	_, _, err := svc.BookingETicket(context.Background(), 1)
	assert.True(t, domain.IsConflict(err))
}

func TestPDFTextFoldsVietnamese(t *testing.T) {
	assert.Equal(t, "Nguyen Van A", pdfText("Nguyễn Văn Á"))
	assert.Equal(t, "DA NANG", pdfText("ĐÀ NẴNG"))
	assert.Equal(t, "-", pdfText("  "))
}
