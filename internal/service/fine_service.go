package service

import (
	"context"
	"strings"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type FineService struct {
	fines   repository.FineRepository
	tickets repository.TicketRepository
	clock   clock.Clock
}

func NewFineService(fines repository.FineRepository, tickets repository.TicketRepository, clk clock.Clock) *FineService {
	return &FineService{fines: fines, tickets: tickets, clock: clk}
}

func (s *FineService) Create(ctx context.Context, dto domain.FineDTO) (*domain.FineDetail, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.tickets.FindDetailByID(ctx, dto.TicketID); err != nil {
		return nil, notFound(err, domain.ErrTicketNotFound)
	}
	fine, err := s.fines.Create(ctx, &domain.Fine{
		TicketID: dto.TicketID,
		Motivo:   strings.TrimSpace(dto.Motivo),
		Monto:    domain.NewAmount(dto.Monto.Decimal),
		Fecha:    s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, fine.ID)
}

func (s *FineService) GetByID(ctx context.Context, id int) (*domain.FineDetail, error) {
	f, err := s.fines.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrFineNotFound)
	}
	return f, nil
}

func (s *FineService) List(ctx context.Context) ([]domain.FineDetail, error) {
	return s.fines.List(ctx)
}

func (s *FineService) ListByTicket(ctx context.Context, ticketID int) ([]domain.FineDetail, error) {
	return s.fines.ListByTicket(ctx, ticketID)
}

// Update changes the reason and/or amount; omitted fields keep their value.
func (s *FineService) Update(ctx context.Context, id int, dto domain.FineUpdateDTO) (*domain.FineDetail, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fine := current.Fine
	if m := strings.TrimSpace(dto.Motivo); m != "" {
		fine.Motivo = m
	}
	if !dto.Monto.IsZero() {
		if err := domain.CheckAmount("monto", dto.Monto); err != nil {
			return nil, err
		}
		fine.Monto = domain.NewAmount(dto.Monto.Decimal)
	}
	if _, err := s.fines.Update(ctx, &fine); err != nil {
		return nil, notFound(err, domain.ErrFineNotFound)
	}
	return s.GetByID(ctx, id)
}

func (s *FineService) Delete(ctx context.Context, id int) error {
	return notFound(s.fines.Delete(ctx, id), domain.ErrFineNotFound)
}
