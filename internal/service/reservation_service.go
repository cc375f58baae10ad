package service

import (
	"context"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReservationService books spaces for a future period. Overlap checks run
// under a lock on the space row so two bookings cannot both pass.
type ReservationService struct {
	tx           repository.Transactor
	reservations repository.ReservationRepository
	clients      repository.ClientRepository
	spaces       repository.SpaceRepository
	clock        clock.Clock
}

func NewReservationService(
	tx repository.Transactor,
	reservations repository.ReservationRepository,
	clients repository.ClientRepository,
	spaces repository.SpaceRepository,
	clk clock.Clock,
) *ReservationService {
	return &ReservationService{tx: tx, reservations: reservations, clients: clients, spaces: spaces, clock: clk}
}

func (s *ReservationService) Create(ctx context.Context, dto domain.ReservationDTO) (*domain.ReservationDetail, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var id int
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.clients.FindByID(ctx, dto.ClienteID); err != nil {
			return notFound(err, domain.ErrClientNotFound)
		}
		if _, err := s.spaces.FindForUpdate(ctx, dto.EspacioID); err != nil {
			return notFound(err, domain.ErrSpaceNotFound)
		}
		overlap, err := s.reservations.HasOverlap(ctx, dto.EspacioID, dto.FechaInicio, dto.FechaFin, 0)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrReservationOverlap
		}
		r, err := s.reservations.Create(ctx, &domain.Reservation{
			ClienteID:    dto.ClienteID,
			EspacioID:    dto.EspacioID,
			FechaReserva: s.clock.Now(),
			FechaInicio:  dto.FechaInicio.UTC(),
			FechaFin:     dto.FechaFin.UTC(),
			Estado:       domain.ReservationActive,
		})
		if err != nil {
			return err
		}
		id = r.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{"reserva_id": id, "espacio_id": dto.EspacioID}).Info("reservation created")
	return s.GetByID(ctx, id)
}

func (s *ReservationService) GetByID(ctx context.Context, id int) (*domain.ReservationDetail, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrReservationNotFound)
	}
	return r, nil
}

func (s *ReservationService) List(ctx context.Context, filter domain.ReservationFilterDTO) ([]domain.ReservationDetail, error) {
	return s.reservations.List(ctx, filter)
}

func (s *ReservationService) ListActive(ctx context.Context) ([]domain.ReservationDetail, error) {
	return s.reservations.List(ctx, domain.ReservationFilterDTO{Estado: string(domain.ReservationActive)})
}

func (s *ReservationService) ListByClient(ctx context.Context, clientID int) ([]domain.ReservationDetail, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return s.reservations.List(ctx, domain.ReservationFilterDTO{ClienteID: clientID})
}

// Reschedule moves an ACTIVA reservation to a new period.
func (s *ReservationService) Reschedule(ctx context.Context, id int, dto domain.ReservationUpdateDTO) (*domain.ReservationDetail, error) {
	if !dto.FechaFin.After(dto.FechaInicio) {
		return nil, domain.NewValidationError("fecha_fin must be after fecha_inicio")
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		r, err := s.lockActive(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.spaces.FindForUpdate(ctx, r.EspacioID); err != nil {
			return notFound(err, domain.ErrSpaceNotFound)
		}
		overlap, err := s.reservations.HasOverlap(ctx, r.EspacioID, dto.FechaInicio, dto.FechaFin, r.ID)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrReservationOverlap
		}
		return s.reservations.UpdatePeriod(ctx, r.ID, dto.FechaInicio.UTC(), dto.FechaFin.UTC())
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ReservationService) Cancel(ctx context.Context, id int) (*domain.ReservationDetail, error) {
	return s.transition(ctx, id, domain.ReservationCancelled)
}

func (s *ReservationService) Finish(ctx context.Context, id int) (*domain.ReservationDetail, error) {
	return s.transition(ctx, id, domain.ReservationFinished)
}

func (s *ReservationService) transition(ctx context.Context, id int, to domain.ReservationStatus) (*domain.ReservationDetail, error) {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.lockActive(ctx, id); err != nil {
			return err
		}
		return s.reservations.SetStatus(ctx, id, to)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithFields(logrus.Fields{"reserva_id": id, "estado": to}).Info("reservation state changed")
	return s.GetByID(ctx, id)
}

func (s *ReservationService) lockActive(ctx context.Context, id int) (*domain.Reservation, error) {
	r, err := s.reservations.FindForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrReservationNotFound)
	}
	if r.Estado != domain.ReservationActive {
		return nil, domain.ErrReservationNotActive
	}
	return r, nil
}
