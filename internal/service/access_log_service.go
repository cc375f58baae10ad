package service

import (
	"context"
	"time"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
)

type AccessLogService struct {
	logs  repository.AccessLogRepository
	users repository.UserRepository
	clock clock.Clock
}

func NewAccessLogService(logs repository.AccessLogRepository, users repository.UserRepository, clk clock.Clock) *AccessLogService {
	return &AccessLogService{logs: logs, users: users, clock: clk}
}

// Record stores a manual LOGIN/LOGOUT entry stamped with the current time.
func (s *AccessLogService) Record(ctx context.Context, dto domain.AccessLogDTO) (*domain.AccessLogDetail, error) {
	action := domain.AccessAction(dto.Accion)
	if action != domain.ActionLogin && action != domain.ActionLogout {
		return nil, domain.NewValidationError("accion must be LOGIN or LOGOUT")
	}
	if _, err := s.users.FindByID(ctx, dto.UsuarioID); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	entry, err := s.logs.Create(ctx, &domain.AccessLog{UsuarioID: dto.UsuarioID, Accion: action, Fecha: s.clock.Now()})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, entry.ID)
}

func (s *AccessLogService) GetByID(ctx context.Context, id int) (*domain.AccessLogDetail, error) {
	e, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrAccessLogNotFound)
	}
	return e, nil
}

func (s *AccessLogService) List(ctx context.Context, filter domain.AccessLogFilterDTO) ([]domain.AccessLogDetail, error) {
	return s.logs.List(ctx, filter)
}

func (s *AccessLogService) ListByUser(ctx context.Context, userID int, limit int) (*domain.User, []domain.AccessLogDetail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, notFound(err, domain.ErrUserNotFound)
	}
	user.Password = ""
	entries, err := s.logs.List(ctx, domain.AccessLogFilterDTO{UsuarioID: userID, Limit: limit})
	if err != nil {
		return nil, nil, err
	}
	return user, entries, nil
}

func (s *AccessLogService) Stats(ctx context.Context, filter domain.AccessLogFilterDTO) (*domain.AccessStats, error) {
	return s.logs.Stats(ctx, filter)
}

// Purge deletes entries older than days, which may not be under
// MinRetentionDays. It returns the number of rows removed and the cutoff.
func (s *AccessLogService) Purge(ctx context.Context, days int) (int64, time.Time, error) {
	if days < domain.MinRetentionDays {
		return 0, time.Time{}, domain.NewValidationError("dias must be at least %d", domain.MinRetentionDays)
	}
	cutoff := s.clock.Now().AddDate(0, 0, -days)
	n, err := s.logs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, time.Time{}, err
	}
	logger.FromContext(ctx).WithFields(logrus.Fields{"dias": days, "eliminados": n}).Info("access history purged")
	return n, cutoff, nil
}
