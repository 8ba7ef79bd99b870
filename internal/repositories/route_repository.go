package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

const routeSelect = `
	SELECT r.id, r.name, r.code, r.origin_station_id, r.destination_station_id,
	       r.distance_km, r.estimated_duration, r.status, r.created_at, r.updated_at,
	       COALESCE(o.name, ''), COALESCE(o.code, ''), COALESCE(o.city, ''),
	       COALESCE(d.name, ''), COALESCE(d.code, ''), COALESCE(d.city, '')
	FROM routes r
	LEFT JOIN stations o ON o.id = r.origin_station_id
	LEFT JOIN stations d ON d.id = r.destination_station_id`

type RouteRepository struct {
	DB intdb.DBTX
}

func scanRoute(s scanner) (models.Route, error) {
	var (
		rt     models.Route
		origin models.Station
		dest   models.Station
	)
	err := s.Scan(&rt.ID, &rt.Name, &rt.Code, &rt.OriginStationID, &rt.DestinationStationID,
		&rt.DistanceKm, &rt.EstimatedDuration, &rt.Status, &rt.CreatedAt, &rt.UpdatedAt,
		&origin.Name, &origin.Code, &origin.Address.City,
		&dest.Name, &dest.Code, &dest.Address.City)
	if err != nil {
		return models.Route{}, err
	}
	if origin.Name != "" {
		origin.ID = rt.OriginStationID
		rt.Origin = &origin
	}
	if dest.Name != "" {
		dest.ID = rt.DestinationStationID
		rt.Destination = &dest
	}
	return rt, nil
}

// List returns one page of routes matching q.Search on name or code.
func (r RouteRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Route, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(r.name LIKE ? OR r.code LIKE ?)", p, p)
	}
	if q.Status != "" {
		w.add("r.status = ?", q.Status)
	}

	var total int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM routes r WHERE `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repositories.RouteRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx, routeSelect+` WHERE `+w.String()+` ORDER BY r.created_at DESC, r.id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.RouteRepository.List: %w", err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repositories.RouteRepository.List: scan: %w", err)
		}
		out = append(out, rt)
	}
	return out, total, rows.Err()
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	rt, err := scanRoute(pick(r.DB).QueryRowContext(ctx, routeSelect+` WHERE r.id = ?`, id))
	if err != nil {
		return models.Route{}, fmt.Errorf("repositories.RouteRepository.GetByID: %w", mapReadError("route", id, err))
	}
	return rt, nil
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO routes (name, code, origin_station_id, destination_station_id, distance_km, estimated_duration, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rt.Name, rt.Code, rt.OriginStationID, rt.DestinationStationID, rt.DistanceKm, rt.EstimatedDuration, rt.Status)
	if err != nil {
		return 0, fmt.Errorf("repositories.RouteRepository.Create: %w", mapWriteError("route", err))
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	_, err := pick(r.DB).ExecContext(ctx, `
		UPDATE routes
		SET name = ?, code = ?, origin_station_id = ?, destination_station_id = ?,
		    distance_km = ?, estimated_duration = ?, status = ?
		WHERE id = ?`,
		rt.Name, rt.Code, rt.OriginStationID, rt.DestinationStationID, rt.DistanceKm, rt.EstimatedDuration, rt.Status, rt.ID)
	if err != nil {
		return fmt.Errorf("repositories.RouteRepository.Update: %w", mapWriteError("route", err))
	}
	return nil
}

func (r RouteRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.RouteRepository.Delete: %w", mapWriteError("route", err))
	}
	if err := affectedOrNotFound(res, "route", id); err != nil {
		return fmt.Errorf("repositories.RouteRepository.Delete: %w", err)
	}
	return nil
}

func (r RouteRepository) Codes(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, pick(r.DB), `SELECT code FROM routes`)
}
