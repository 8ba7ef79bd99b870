package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

const stationColumns = `id, name, code, street, ward, district, city, status, created_at, updated_at`

type StationRepository struct {
	DB intdb.DBTX
}

func scanStation(s scanner) (models.Station, error) {
	var st models.Station
	err := s.Scan(&st.ID, &st.Name, &st.Code,
		&st.Address.Street, &st.Address.Ward, &st.Address.District, &st.Address.City,
		&st.Status, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

// List returns one page of stations matching q.Search on name, code or city.
func (r StationRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Station, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(name LIKE ? OR code LIKE ? OR city LIKE ?)", p, p, p)
	}
	if q.Status != "" {
		w.add("status = ?", q.Status)
	}

	var total int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM stations WHERE `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repositories.StationRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE `+w.String()+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.StationRepository.List: %w", err)
	}
	defer rows.Close()

	out := []models.Station{}
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repositories.StationRepository.List: scan: %w", err)
		}
		out = append(out, st)
	}
	return out, total, rows.Err()
}

func (r StationRepository) GetByID(ctx context.Context, id int64) (models.Station, error) {
	row := pick(r.DB).QueryRowContext(ctx, `SELECT `+stationColumns+` FROM stations WHERE id = ?`, id)
	st, err := scanStation(row)
	if err != nil {
		return models.Station{}, fmt.Errorf("repositories.StationRepository.GetByID: %w", mapReadError("station", id, err))
	}
	return st, nil
}

func (r StationRepository) Create(ctx context.Context, st models.Station) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO stations (name, code, street, ward, district, city, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.Name, st.Code, st.Address.Street, st.Address.Ward, st.Address.District, st.Address.City, st.Status)
	if err != nil {
		return 0, fmt.Errorf("repositories.StationRepository.Create: %w", mapWriteError("station", err))
	}
	return res.LastInsertId()
}

// Update overwrites a station. MySQL reports zero affected rows for no-op
// updates, so existence is checked by the caller.
func (r StationRepository) Update(ctx context.Context, st models.Station) error {
	_, err := pick(r.DB).ExecContext(ctx, `
		UPDATE stations
		SET name = ?, code = ?, street = ?, ward = ?, district = ?, city = ?, status = ?
		WHERE id = ?`,
		st.Name, st.Code, st.Address.Street, st.Address.Ward, st.Address.District, st.Address.City, st.Status, st.ID)
	if err != nil {
		return fmt.Errorf("repositories.StationRepository.Update: %w", mapWriteError("station", err))
	}
	return nil
}

func (r StationRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM stations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.StationRepository.Delete: %w", mapWriteError("station", err))
	}
	if err := affectedOrNotFound(res, "station", id); err != nil {
		return fmt.Errorf("repositories.StationRepository.Delete: %w", err)
	}
	return nil
}

// Codes returns every station code in use.
func (r StationRepository) Codes(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, pick(r.DB), `SELECT code FROM stations`)
}

// Cities returns the distinct non-empty cities stations are located in.
func (r StationRepository) Cities(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, pick(r.DB), `SELECT DISTINCT city FROM stations WHERE city <> '' ORDER BY city`)
}

func queryStrings(ctx context.Context, db intdb.DBTX, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
