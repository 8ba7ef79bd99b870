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

type StationService struct {
	Repo      repositories.StationRepository
	RequestID string
}

type StationInput struct {
	Name    string               `json:"name"`
	Code    string               `json:"code"`
	Address models.Address       `json:"address"`
	Status  models.StationStatus `json:"status"`
}

func (in StationInput) normalize() StationInput {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Address.Street = strings.TrimSpace(in.Address.Street)
	in.Address.Ward = strings.TrimSpace(in.Address.Ward)
	in.Address.District = strings.TrimSpace(in.Address.District)
	in.Address.City = utils.NormalizeSpace(in.Address.City)
	if in.Status == "" {
		in.Status = models.StationActive
	}
	return in
}

func (in StationInput) validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if in.Status != models.StationActive && in.Status != models.StationInactive {
		return domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return nil
}

func (s StationService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Station], error) {
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page[models.Station]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s StationService) Get(ctx context.Context, id int64) (models.Station, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create stores a new station, generating its code from the name when none
// was given.
func (s StationService) Create(ctx context.Context, in StationInput) (models.Station, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return models.Station{}, err
	}
	if in.Code == "" {
		code, err := s.SuggestCode(ctx, in.Name)
		if err != nil {
			return models.Station{}, err
		}
		in.Code = code
	}

	id, err := s.Repo.Create(ctx, models.Station{Name: in.Name, Code: in.Code, Address: in.Address, Status: in.Status})
	if err != nil {
		return models.Station{}, err
	}
	utils.LogEvent(s.RequestID, "stations", "create", "station created", "station_id", id, "code", in.Code)
	return s.Repo.GetByID(ctx, id)
}

func (s StationService) Update(ctx context.Context, id int64, in StationInput) (models.Station, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Station{}, err
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return models.Station{}, err
	}
	if in.Code == "" {
		in.Code = current.Code
	}

	st := models.Station{ID: id, Name: in.Name, Code: in.Code, Address: in.Address, Status: in.Status}
	if err := s.Repo.Update(ctx, st); err != nil {
		return models.Station{}, err
	}
	utils.LogEvent(s.RequestID, "stations", "update", "station updated", "station_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s StationService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "stations", "delete", "station deleted", "station_id", id)
	return nil
}

func (s StationService) Cities(ctx context.Context) ([]string, error) {
	return s.Repo.Cities(ctx)
}

// SuggestCode proposes a code for name that no existing station uses.
func (s StationService) SuggestCode(ctx context.Context, name string) (string, error) {
	if err := required("name", name); err != nil {
		return "", err
	}
	existing, err := s.Repo.Codes(ctx)
	if err != nil {
		return "", err
	}
	return codegen.StationCode(name, existing), nil
}
