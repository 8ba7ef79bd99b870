package services

import (
	"context"
	"time"

	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

const (
	recentBookings = 5
	dailyWindow    = 7
)

type DashboardService struct {
	Stats    repositories.StatsRepository
	Bookings repositories.BookingRepository
	Trips    repositories.TripRepository
	Location *time.Location
	// Now is overridable in tests.
	Now func() time.Time
}

type MonthRevenue struct {
	Month   int   `json:"month"`
	Revenue int64 `json:"revenue"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DashboardSummary struct {
	Totals            repositories.Totals       `json:"totals"`
	PaidEarnings      int64                     `json:"paidEarnings"`
	PaidEarningsLabel string                    `json:"paidEarningsLabel"`
	MonthlyRevenue    []MonthRevenue            `json:"monthlyRevenue"`
	DailyBookings     []DayCount                `json:"dailyBookings"`
	RecentBookings    []models.Booking          `json:"recentBookings"`
	TripStatus        map[models.TripStatus]int `json:"tripStatus"`
}

func (s DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	now := s.now().In(loc)

	totals, err := s.Stats.Totals(ctx)
	if err != nil {
		return out, err
	}
	out.Totals = totals

	if out.PaidEarnings, err = s.Bookings.PaidEarnings(ctx); err != nil {
		return out, err
	}
	out.PaidEarningsLabel = utils.FormatVND(out.PaidEarnings)

	months, err := s.Bookings.MonthlyRevenue(ctx, now.Year())
	if err != nil {
		return out, err
	}
	out.MonthlyRevenue = make([]MonthRevenue, 0, len(months))
	for i, v := range months {
		out.MonthlyRevenue = append(out.MonthlyRevenue, MonthRevenue{Month: i + 1, Revenue: v})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	since := today.AddDate(0, 0, -(dailyWindow - 1))
	perDay, err := s.Bookings.CountPerDay(ctx, since)
	if err != nil {
		return out, err
	}
	out.DailyBookings = make([]DayCount, 0, dailyWindow)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d, loc)
		out.DailyBookings = append(out.DailyBookings, DayCount{Date: key, Count: perDay[key]})
	}

	if out.RecentBookings, err = s.Bookings.Recent(ctx, recentBookings); err != nil {
		return out, err
	}

	counts, err := s.Trips.CountByStatus(ctx)
	if err != nil {
		return out, err
	}
	out.TripStatus = map[models.TripStatus]int{
		models.TripScheduled:  counts[models.TripScheduled],
		models.TripInProgress: counts[models.TripInProgress],
		models.TripCompleted:  counts[models.TripCompleted],
		models.TripCancelled:  counts[models.TripCancelled],
	}
	return out, nil
}
