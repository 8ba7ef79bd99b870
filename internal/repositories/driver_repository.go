package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

const driverColumns = `id, full_name, phone, email, license_number, operator, status, created_at, updated_at`

type DriverRepository struct {
	DB intdb.DBTX
}

func scanDriver(s scanner) (models.Driver, error) {
	var d models.Driver
	err := s.Scan(&d.ID, &d.FullName, &d.Phone, &d.Email, &d.LicenseNumber, &d.Operator, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r DriverRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Driver, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(full_name LIKE ? OR phone LIKE ? OR license_number LIKE ?)", p, p, p)
	}
	if q.Status != "" {
		w.add("status = ?", q.Status)
	}

	var total int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers WHERE `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repositories.DriverRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE `+w.String()+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.DriverRepository.List: %w", err)
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repositories.DriverRepository.List: scan: %w", err)
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// ListByStatus returns every driver with the given status ordered by name.
func (r DriverRepository) ListByStatus(ctx context.Context, status models.DriverStatus) ([]models.Driver, error) {
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE status = ? ORDER BY full_name`, status)
	if err != nil {
		return nil, fmt.Errorf("repositories.DriverRepository.ListByStatus: %w", err)
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repositories.DriverRepository.ListByStatus: scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	d, err := scanDriver(pick(r.DB).QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id))
	if err != nil {
		return models.Driver{}, fmt.Errorf("repositories.DriverRepository.GetByID: %w", mapReadError("driver", id, err))
	}
	return d, nil
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO drivers (full_name, phone, email, license_number, operator, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.FullName, d.Phone, d.Email, d.LicenseNumber, d.Operator, d.Status)
	if err != nil {
		return 0, fmt.Errorf("repositories.DriverRepository.Create: %w", mapWriteError("driver", err))
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	_, err := pick(r.DB).ExecContext(ctx, `
		UPDATE drivers
		SET full_name = ?, phone = ?, email = ?, license_number = ?, operator = ?, status = ?
		WHERE id = ?`,
		d.FullName, d.Phone, d.Email, d.LicenseNumber, d.Operator, d.Status, d.ID)
	if err != nil {
		return fmt.Errorf("repositories.DriverRepository.Update: %w", mapWriteError("driver", err))
	}
	return nil
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.DriverRepository.Delete: %w", mapWriteError("driver", err))
	}
	if err := affectedOrNotFound(res, "driver", id); err != nil {
		return fmt.Errorf("repositories.DriverRepository.Delete: %w", err)
	}
	return nil
}
