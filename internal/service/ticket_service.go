package service

import (
	"context"
	"errors"
	"fmt"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"
)

// TicketService owns the entry/exit lifecycle. Entry and exit each run in one
// transaction holding row locks on the vehicle, space and ticket involved.
type TicketService struct {
	tx        repository.Transactor
	tickets   repository.TicketRepository
	vehicles  repository.VehicleRepository
	spaces    repository.SpaceRepository
	tariffs   repository.TariffRepository
	employees repository.EmployeeRepository
	clock     clock.Clock
}

func NewTicketService(
	tx repository.Transactor,
	tickets repository.TicketRepository,
	vehicles repository.VehicleRepository,
	spaces repository.SpaceRepository,
	tariffs repository.TariffRepository,
	employees repository.EmployeeRepository,
	clk clock.Clock,
) *TicketService {
	return &TicketService{
		tx:        tx,
		tickets:   tickets,
		vehicles:  vehicles,
		spaces:    spaces,
		tariffs:   tariffs,
		employees: employees,
		clock:     clk,
	}
}

// RegisterEntry opens an ACTIVO ticket for the vehicle on the space and marks
// the space unavailable. actingUserID is the authenticated caller; the ticket
// is attributed to their employee record when they have one.
func (s *TicketService) RegisterEntry(ctx context.Context, dto domain.TicketEntryDTO, actingUserID int) (*domain.TicketDetail, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var detail *domain.TicketDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.vehicles.FindForUpdate(ctx, dto.VehiculoID); err != nil {
			return notFound(err, domain.ErrVehicleNotFound)
		}

		space, err := s.spaces.FindForUpdate(ctx, dto.EspacioID)
		if err != nil {
			return notFound(err, domain.ErrSpaceNotFound)
		}
		if !space.Disponible {
			return domain.ErrSpaceUnavailable
		}

		active, err := s.tickets.HasActiveForVehicle(ctx, dto.VehiculoID)
		if err != nil {
			return err
		}
		if active {
			return domain.ErrDuplicateActiveTicket
		}

		if _, err := s.tariffs.FindByID(ctx, dto.TarifaID); err != nil {
			return notFound(err, domain.ErrTariffNotFound)
		}

		employeeID, err := s.employeeFor(ctx, actingUserID)
		if err != nil {
			return err
		}

		ticket, err := s.tickets.Create(ctx, &domain.Ticket{
			VehiculoID:  dto.VehiculoID,
			EspacioID:   dto.EspacioID,
			EmpleadoID:  employeeID,
			TarifaID:    dto.TarifaID,
			HoraEntrada: s.clock.Now(),
			Estado:      domain.TicketActive,
		})
		if err != nil {
			return err
		}

		if err := s.spaces.SetAvailability(ctx, dto.EspacioID, false); err != nil {
			return fmt.Errorf("mark space %d unavailable: %w", dto.EspacioID, err)
		}

		detail, err = s.tickets.FindDetailByID(ctx, ticket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"ticket_id":   detail.ID,
		"vehiculo_id": detail.VehiculoID,
		"espacio_id":  detail.EspacioID,
	}).Info("ticket opened")
	return detail, nil
}

// RegisterExit closes the ticket at the current instant, frees its space and
// returns the ticket with its computed charge.
func (s *TicketService) RegisterExit(ctx context.Context, ticketID int) (*domain.TicketDetail, error) {
	var detail *domain.TicketDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		ticket, err := s.tickets.FindForUpdate(ctx, ticketID)
		if err != nil {
			return notFound(err, domain.ErrTicketNotFound)
		}
		if !ticket.IsActive() {
			return domain.ErrTicketAlreadyClosed
		}

		exitTime := s.clock.Now()
		if exitTime.Before(ticket.HoraEntrada) {
			exitTime = ticket.HoraEntrada
		}
		if err := s.tickets.Close(ctx, ticket.ID, exitTime); err != nil {
			return err
		}
		if err := s.spaces.SetAvailability(ctx, ticket.EspacioID, true); err != nil {
			return fmt.Errorf("free space %d: %w", ticket.EspacioID, err)
		}

		detail, err = s.tickets.FindDetailByID(ctx, ticket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.attachCharge(detail)
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"ticket_id":  detail.ID,
		"espacio_id": detail.EspacioID,
		"minutes":    detail.Charge.Minutes,
		"hours":      detail.Charge.BillableHours,
		"amount":     detail.Charge.Amount.String(),
	}).Info("ticket closed")
	return detail, nil
}

func (s *TicketService) GetByID(ctx context.Context, id int) (*domain.TicketDetail, error) {
	detail, err := s.tickets.FindDetailByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTicketNotFound)
	}
	s.attachCharge(detail)
	return detail, nil
}

func (s *TicketService) List(ctx context.Context, filter domain.TicketFilterDTO) ([]domain.TicketDetail, error) {
	return s.tickets.List(ctx, filter)
}

// ListActive returns open tickets with the minutes elapsed so far.
func (s *TicketService) ListActive(ctx context.Context) ([]domain.TicketDetail, error) {
	tickets, err := s.tickets.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for i := range tickets {
		elapsed := domain.ElapsedMinutes(tickets[i].HoraEntrada, now)
		tickets[i].Elapsed = &elapsed
	}
	return tickets, nil
}

func (s *TicketService) ListByPlate(ctx context.Context, plate string) ([]domain.TicketDetail, error) {
	return s.tickets.ListByPlate(ctx, domain.NormalizePlate(plate))
}

// attachCharge bills a closed ticket up to its exit and an active one up to now.
func (s *TicketService) attachCharge(d *domain.TicketDetail) {
	end := s.clock.Now()
	if d.HoraSalida.Valid {
		end = d.HoraSalida.Time
	}
	charge := domain.ComputeCharge(d.HoraEntrada, end, d.PrecioHora)
	d.Charge = &charge
}

func (s *TicketService) employeeFor(ctx context.Context, userID int) (null.Int, error) {
	if userID <= 0 {
		return null.Int{}, nil
	}
	emp, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return null.Int{}, nil
		}
		return null.Int{}, fmt.Errorf("resolve employee for user %d: %w", userID, err)
	}
	return null.IntFrom(int64(emp.ID)), nil
}

// notFound swaps repository.ErrNotFound for the domain error naming the
// missing entity and passes every other error through.
func notFound(err error, domainErr *domain.Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domainErr
	}
	return err
}
