package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

const busColumns = `id, operator, license_plate, bus_type, seat_count, status, created_at, updated_at`

type BusRepository struct {
	DB intdb.DBTX
}

func scanBus(s scanner) (models.Bus, error) {
	var b models.Bus
	err := s.Scan(&b.ID, &b.Operator, &b.LicensePlate, &b.BusType, &b.SeatCount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r BusRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Bus, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(license_plate LIKE ? OR operator LIKE ?)", p, p)
	}
	if q.Status != "" {
		w.add("status = ?", q.Status)
	}

	var total int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM buses WHERE `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repositories.BusRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+busColumns+` FROM buses WHERE `+w.String()+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.BusRepository.List: %w", err)
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repositories.BusRepository.List: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// ListByStatus returns every bus with the given status ordered by plate.
func (r BusRepository) ListByStatus(ctx context.Context, status models.BusStatus) ([]models.Bus, error) {
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+busColumns+` FROM buses WHERE status = ? ORDER BY license_plate`, status)
	if err != nil {
		return nil, fmt.Errorf("repositories.BusRepository.ListByStatus: %w", err)
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, fmt.Errorf("repositories.BusRepository.ListByStatus: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	b, err := scanBus(pick(r.DB).QueryRowContext(ctx, `SELECT `+busColumns+` FROM buses WHERE id = ?`, id))
	if err != nil {
		return models.Bus{}, fmt.Errorf("repositories.BusRepository.GetByID: %w", mapReadError("bus", id, err))
	}
	return b, nil
}

func (r BusRepository) Create(ctx context.Context, b models.Bus) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO buses (operator, license_plate, bus_type, seat_count, status)
		VALUES (?, ?, ?, ?, ?)`,
		b.Operator, b.LicensePlate, b.BusType, b.SeatCount, b.Status)
	if err != nil {
		return 0, fmt.Errorf("repositories.BusRepository.Create: %w", mapWriteError("bus", err))
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(ctx context.Context, b models.Bus) error {
	_, err := pick(r.DB).ExecContext(ctx, `
		UPDATE buses
		SET operator = ?, license_plate = ?, bus_type = ?, seat_count = ?, status = ?
		WHERE id = ?`,
		b.Operator, b.LicensePlate, b.BusType, b.SeatCount, b.Status, b.ID)
	if err != nil {
		return fmt.Errorf("repositories.BusRepository.Update: %w", mapWriteError("bus", err))
	}
	return nil
}

func (r BusRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.BusRepository.Delete: %w", mapWriteError("bus", err))
	}
	if err := affectedOrNotFound(res, "bus", id); err != nil {
		return fmt.Errorf("repositories.BusRepository.Delete: %w", err)
	}
	return nil
}
