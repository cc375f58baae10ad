package service

import (
	"context"
	"errors"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type VehicleService struct {
	vehicles repository.VehicleRepository
	clients  repository.ClientRepository
	tickets  repository.TicketRepository
}

func NewVehicleService(vehicles repository.VehicleRepository, clients repository.ClientRepository, tickets repository.TicketRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles, clients: clients, tickets: tickets}
}

// Create stores the vehicle with its plate uppercased. A plate already on
// file is a conflict.
func (s *VehicleService) Create(ctx context.Context, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	v, err := s.fromDTO(ctx, dto)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.FindByPlate(ctx, v.Placa); err == nil {
		return nil, domain.ErrDuplicatePlate
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.vehicles.Create(ctx, v)
}

func (s *VehicleService) GetByID(ctx context.Context, id int) (*domain.VehicleDetail, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrVehicleNotFound)
	}
	return v, nil
}

func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*domain.VehicleDetail, error) {
	v, err := s.vehicles.FindByPlate(ctx, domain.NormalizePlate(plate))
	if err != nil {
		return nil, notFound(err, domain.ErrVehicleNotFound)
	}
	return v, nil
}

func (s *VehicleService) List(ctx context.Context) ([]domain.VehicleDetail, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) Update(ctx context.Context, id int, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	v, err := s.fromDTO(ctx, dto)
	if err != nil {
		return nil, err
	}
	if other, err := s.vehicles.FindByPlate(ctx, v.Placa); err == nil && other.ID != id {
		return nil, domain.ErrDuplicatePlate
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	v.ID = id
	updated, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return nil, notFound(err, domain.ErrVehicleNotFound)
	}
	return updated, nil
}

// Delete refuses while tickets reference the vehicle.
func (s *VehicleService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.tickets.CountByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("vehicle", n, "tickets")
	}
	return notFound(s.vehicles.Delete(ctx, id), domain.ErrVehicleNotFound)
}

func (s *VehicleService) fromDTO(ctx context.Context, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	plate := domain.NormalizePlate(dto.Placa)
	if plate == "" {
		return nil, domain.NewValidationError("placa is required")
	}
	if dto.ClienteID > 0 {
		if _, err := s.clients.FindByID(ctx, dto.ClienteID); err != nil {
			return nil, notFound(err, domain.ErrClientNotFound)
		}
	}
	return &domain.Vehicle{
		ClienteID: domain.NullInt(dto.ClienteID),
		Placa:     plate,
		Marca:     domain.NullString(dto.Marca),
		Modelo:    domain.NullString(dto.Modelo),
		Color:     domain.NullString(dto.Color),
	}, nil
}
