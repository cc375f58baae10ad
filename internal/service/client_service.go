package service

import (
	"context"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type ClientService struct {
	clients  repository.ClientRepository
	vehicles repository.VehicleRepository
}

func NewClientService(clients repository.ClientRepository, vehicles repository.VehicleRepository) *ClientService {
	return &ClientService{clients: clients, vehicles: vehicles}
}

func (s *ClientService) Create(ctx context.Context, dto domain.ClientDTO) (*domain.Client, error) {
	if strings.TrimSpace(dto.Nombre) == "" {
		return nil, domain.NewValidationError("nombre is required")
	}
	return s.clients.Create(ctx, clientFromDTO(dto))
}

func (s *ClientService) GetByID(ctx context.Context, id int) (*domain.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id int, dto domain.ClientDTO) (*domain.Client, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Nombre) == "" {
		return nil, domain.NewValidationError("nombre is required")
	}
	c := clientFromDTO(dto)
	c.ID = id
	updated, err := s.clients.Update(ctx, c)
	if err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return updated, nil
}

// Delete refuses while vehicles still belong to the client.
func (s *ClientService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.vehicles.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("client", n, "vehicles")
	}
	return notFound(s.clients.Delete(ctx, id), domain.ErrClientNotFound)
}

func clientFromDTO(dto domain.ClientDTO) *domain.Client {
	return &domain.Client{
		Nombre:   strings.TrimSpace(dto.Nombre),
		Telefono: domain.NullString(strings.TrimSpace(dto.Telefono)),
		Correo:   domain.NullString(strings.TrimSpace(dto.Correo)),
		NIT:      domain.NullString(strings.TrimSpace(dto.NIT)),
	}
}
