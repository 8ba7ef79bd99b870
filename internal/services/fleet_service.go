package services

import (
	"context"
	"strings"

	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

type BusService struct {
	Repo      repositories.BusRepository
	RequestID string
}

type BusInput struct {
	Operator     string           `json:"operator"`
	LicensePlate string           `json:"licensePlate"`
	BusType      models.BusType   `json:"busType"`
	SeatCount    int              `json:"seatCount"`
	Status       models.BusStatus `json:"status"`
}

func (in BusInput) bus(id int64) (models.Bus, error) {
	b := models.Bus{
		ID:           id,
		Operator:     utils.NormalizeSpace(in.Operator),
		LicensePlate: strings.ToUpper(utils.NormalizeSpace(in.LicensePlate)),
		BusType:      in.BusType,
		SeatCount:    in.SeatCount,
		Status:       in.Status,
	}
	if b.BusType == "" {
		b.BusType = models.BusStandard
	}
	if b.Status == "" {
		b.Status = models.BusActive
	}

	switch {
	case b.LicensePlate == "":
		return b, domain.ValidationError{Field: "licensePlate", Msg: "is required"}
	case b.SeatCount <= 0:
		return b, domain.ValidationError{Field: "seatCount", Msg: "must be greater than 0"}
	case !models.ValidBusType(b.BusType):
		return b, domain.ValidationError{Field: "busType", Msg: "unknown bus type"}
	}
	switch b.Status {
	case models.BusActive, models.BusMaintenance, models.BusInactive:
	default:
		return b, domain.ValidationError{Field: "status", Msg: "unknown bus status"}
	}
	return b, nil
}

func (s BusService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Bus], error) {
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page[models.Bus]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s BusService) Get(ctx context.Context, id int64) (models.Bus, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s BusService) Create(ctx context.Context, in BusInput) (models.Bus, error) {
	b, err := in.bus(0)
	if err != nil {
		return models.Bus{}, err
	}
	id, err := s.Repo.Create(ctx, b)
	if err != nil {
		return models.Bus{}, err
	}
	utils.LogEvent(s.RequestID, "buses", "create", "bus created", "bus_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s BusService) Update(ctx context.Context, id int64, in BusInput) (models.Bus, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return models.Bus{}, err
	}
	b, err := in.bus(id)
	if err != nil {
		return models.Bus{}, err
	}
	if err := s.Repo.Update(ctx, b); err != nil {
		return models.Bus{}, err
	}
	utils.LogEvent(s.RequestID, "buses", "update", "bus updated", "bus_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s BusService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "buses", "delete", "bus deleted", "bus_id", id)
	return nil
}

type DriverService struct {
	Repo      repositories.DriverRepository
	RequestID string
}

type DriverInput struct {
	FullName      string              `json:"fullName"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	LicenseNumber string              `json:"licenseNumber"`
	Operator      string              `json:"operator"`
	Status        models.DriverStatus `json:"status"`
}

func (in DriverInput) driver(id int64) (models.Driver, error) {
	d := models.Driver{
		ID:            id,
		FullName:      utils.NormalizeSpace(in.FullName),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		LicenseNumber: strings.ToUpper(strings.TrimSpace(in.LicenseNumber)),
		Operator:      utils.NormalizeSpace(in.Operator),
		Status:        in.Status,
	}
	if d.Status == "" {
		d.Status = models.DriverActive
	}

	if err := firstErr(required("fullName", d.FullName), required("licenseNumber", d.LicenseNumber)); err != nil {
		return d, err
	}
	switch d.Status {
	case models.DriverActive, models.DriverSuspended, models.DriverInactive:
	default:
		return d, domain.ValidationError{Field: "status", Msg: "unknown driver status"}
	}
	return d, nil
}

func (s DriverService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Driver], error) {
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page[models.Driver]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s DriverService) Get(ctx context.Context, id int64) (models.Driver, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s DriverService) Create(ctx context.Context, in DriverInput) (models.Driver, error) {
	d, err := in.driver(0)
	if err != nil {
		return models.Driver{}, err
	}
	id, err := s.Repo.Create(ctx, d)
	if err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(s.RequestID, "drivers", "create", "driver created", "driver_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s DriverService) Update(ctx context.Context, id int64, in DriverInput) (models.Driver, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return models.Driver{}, err
	}
	d, err := in.driver(id)
	if err != nil {
		return models.Driver{}, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(s.RequestID, "drivers", "update", "driver updated", "driver_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s DriverService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "drivers", "delete", "driver deleted", "driver_id", id)
	return nil
}
