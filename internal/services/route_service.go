package services

import (
	"context"
	"strings"

	"busadmin/internal/codegen"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

type RouteService struct {
	Repo      repositories.RouteRepository
	Stations  repositories.StationRepository
	RequestID string
}

type RouteInput struct {
	Name                 string             `json:"name"`
	Code                 string             `json:"code"`
	OriginStationID      int64              `json:"originStationId"`
	DestinationStationID int64              `json:"destinationStationId"`
	DistanceKm           float64            `json:"distanceKm"`
	EstimatedDuration    int                `json:"estimatedDuration"`
	Status               models.RouteStatus `json:"status"`
}

func (in RouteInput) validate() error {
	switch {
	case in.OriginStationID <= 0:
		return domain.ValidationError{Field: "originStationId", Msg: "is required"}
	case in.DestinationStationID <= 0:
		return domain.ValidationError{Field: "destinationStationId", Msg: "is required"}
	case in.OriginStationID == in.DestinationStationID:
		return domain.ValidationError{Field: "destinationStationId", Msg: "must differ from the origin"}
	case in.DistanceKm < 0:
		return domain.ValidationError{Field: "distanceKm", Msg: "must not be negative"}
	case in.EstimatedDuration < 0:
		return domain.ValidationError{Field: "estimatedDuration", Msg: "must not be negative"}
	case in.Status != models.RouteActive && in.Status != models.RouteInactive:
		return domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return nil
}

// endpoints loads both stations, reporting a missing one as a validation
// error on the corresponding field.
func (s RouteService) endpoints(ctx context.Context, in RouteInput) (origin, dest models.Station, err error) {
	origin, err = s.Stations.GetByID(ctx, in.OriginStationID)
	if domain.IsNotFound(err) {
		return origin, dest, domain.ValidationError{Field: "originStationId", Msg: "station does not exist", Err: err}
	}
	if err != nil {
		return origin, dest, err
	}
	dest, err = s.Stations.GetByID(ctx, in.DestinationStationID)
	if domain.IsNotFound(err) {
		return origin, dest, domain.ValidationError{Field: "destinationStationId", Msg: "station does not exist", Err: err}
	}
	return origin, dest, err
}

// cityOf is the place name route codes are built from.
func cityOf(st models.Station) string {
	return utils.FirstNonEmpty(st.Address.City, st.Name)
}

func (s RouteService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Route], error) {
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page[models.Route]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s RouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create stores a route. Name defaults to "<origin> - <destination>" and the
// code is generated from the station cities when left blank.
func (s RouteService) Create(ctx context.Context, in RouteInput) (models.Route, error) {
	in = normalizeRouteInput(in)
	if err := in.validate(); err != nil {
		return models.Route{}, err
	}
	origin, dest, err := s.endpoints(ctx, in)
	if err != nil {
		return models.Route{}, err
	}
	if in.Name == "" {
		in.Name = codegen.RouteName(origin.Name, dest.Name)
	}
	if in.Code == "" {
		existing, err := s.Repo.Codes(ctx)
		if err != nil {
			return models.Route{}, err
		}
		in.Code = codegen.RouteCode(cityOf(origin), cityOf(dest), existing)
	}

	id, err := s.Repo.Create(ctx, in.route(0))
	if err != nil {
		return models.Route{}, err
	}
	utils.LogEvent(s.RequestID, "routes", "create", "route created", "route_id", id, "code", in.Code)
	return s.Repo.GetByID(ctx, id)
}

func (s RouteService) Update(ctx context.Context, id int64, in RouteInput) (models.Route, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Route{}, err
	}
	in = normalizeRouteInput(in)
	if err := in.validate(); err != nil {
		return models.Route{}, err
	}
	origin, dest, err := s.endpoints(ctx, in)
	if err != nil {
		return models.Route{}, err
	}
	if in.Name == "" {
		in.Name = codegen.RouteName(origin.Name, dest.Name)
	}
	if in.Code == "" {
		in.Code = current.Code
	}

	if err := s.Repo.Update(ctx, in.route(id)); err != nil {
		return models.Route{}, err
	}
	utils.LogEvent(s.RequestID, "routes", "update", "route updated", "route_id", id)
	return s.Repo.GetByID(ctx, id)
}

// Delete removes a route. Trips keep their rows with a NULL route.
func (s RouteService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "routes", "delete", "route deleted", "route_id", id)
	return nil
}

// RouteSuggestion pre-fills the route form.
type RouteSuggestion struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (s RouteService) Suggest(ctx context.Context, originID, destinationID int64) (RouteSuggestion, error) {
	in := RouteInput{OriginStationID: originID, DestinationStationID: destinationID, Status: models.RouteActive}
	if err := in.validate(); err != nil {
		return RouteSuggestion{}, err
	}
	origin, dest, err := s.endpoints(ctx, in)
	if err != nil {
		return RouteSuggestion{}, err
	}
	existing, err := s.Repo.Codes(ctx)
	if err != nil {
		return RouteSuggestion{}, err
	}
	return RouteSuggestion{
		Name: codegen.RouteName(origin.Name, dest.Name),
		Code: codegen.RouteCode(cityOf(origin), cityOf(dest), existing),
	}, nil
}

func normalizeRouteInput(in RouteInput) RouteInput {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if in.Status == "" {
		in.Status = models.RouteActive
	}
	return in
}

func (in RouteInput) route(id int64) models.Route {
	return models.Route{
		ID:                   id,
		Name:                 in.Name,
		Code:                 in.Code,
		OriginStationID:      in.OriginStationID,
		DestinationStationID: in.DestinationStationID,
		DistanceKm:           in.DistanceKm,
		EstimatedDuration:    in.EstimatedDuration,
		Status:               in.Status,
	}
}
