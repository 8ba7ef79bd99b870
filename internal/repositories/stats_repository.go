package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
)

// Totals counts rows per entity for the dashboard.
type Totals struct {
	Stations  int `json:"stations"`
	Routes    int `json:"routes"`
	Buses     int `json:"buses"`
	Drivers   int `json:"drivers"`
	Trips     int `json:"trips"`
	Customers int `json:"customers"`
	Bookings  int `json:"bookings"`
}

type StatsRepository struct {
	DB intdb.DBTX
}

func (r StatsRepository) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := pick(r.DB).QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM stations),
			(SELECT COUNT(*) FROM routes),
			(SELECT COUNT(*) FROM buses),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM trips),
			(SELECT COUNT(*) FROM users WHERE role = 'customer'),
			(SELECT COUNT(*) FROM bookings)`).
		Scan(&t.Stations, &t.Routes, &t.Buses, &t.Drivers, &t.Trips, &t.Customers, &t.Bookings)
	if err != nil {
		return Totals{}, fmt.Errorf("repositories.StatsRepository.Totals: %w", err)
	}
	return t, nil
}

// TableNames lists the tables of the connected schema.
func (r StatsRepository) TableNames(ctx context.Context) ([]string, error) {
	names, err := queryStrings(ctx, pick(r.DB), `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE()
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("repositories.StatsRepository.TableNames: %w", err)
	}
	return names, nil
}
