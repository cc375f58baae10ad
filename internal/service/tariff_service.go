package service

import (
	"context"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type TariffService struct {
	tariffs repository.TariffRepository
	tickets repository.TicketRepository
}

func NewTariffService(tariffs repository.TariffRepository, tickets repository.TicketRepository) *TariffService {
	return &TariffService{tariffs: tariffs, tickets: tickets}
}

func (s *TariffService) Create(ctx context.Context, dto domain.TariffDTO) (*domain.Tariff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.tariffs.Create(ctx, &domain.Tariff{
		Descripcion: strings.TrimSpace(dto.Descripcion),
		PrecioHora:  domain.NewAmount(dto.PrecioHora.Decimal),
	})
}

func (s *TariffService) GetByID(ctx context.Context, id int) (*domain.Tariff, error) {
	t, err := s.tariffs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTariffNotFound)
	}
	return t, nil
}

func (s *TariffService) List(ctx context.Context) ([]domain.Tariff, error) {
	return s.tariffs.List(ctx)
}

// Update changes the price for future bills. Closed but unpaid tickets are
// charged at the price in force when the payment is registered.
func (s *TariffService) Update(ctx context.Context, id int, dto domain.TariffDTO) (*domain.Tariff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	t, err := s.tariffs.Update(ctx, &domain.Tariff{
		ID:          id,
		Descripcion: strings.TrimSpace(dto.Descripcion),
		PrecioHora:  domain.NewAmount(dto.PrecioHora.Decimal),
	})
	if err != nil {
		return nil, notFound(err, domain.ErrTariffNotFound)
	}
	return t, nil
}

func (s *TariffService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.tickets.CountByTariff(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("tariff", n, "tickets")
	}
	return notFound(s.tariffs.Delete(ctx, id), domain.ErrTariffNotFound)
}
