package service

import (
	"context"
	"errors"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
)

// EmployeeService manages staff records and the shifts they work.
type EmployeeService struct {
	tx        repository.Transactor
	employees repository.EmployeeRepository
	shifts    repository.ShiftRepository
	users     repository.UserRepository
	tickets   repository.TicketRepository
}

func NewEmployeeService(
	tx repository.Transactor,
	employees repository.EmployeeRepository,
	shifts repository.ShiftRepository,
	users repository.UserRepository,
	tickets repository.TicketRepository,
) *EmployeeService {
	return &EmployeeService{tx: tx, employees: employees, shifts: shifts, users: users, tickets: tickets}
}

// --- Employees ---

func (s *EmployeeService) Create(ctx context.Context, dto domain.EmployeeDTO) (*domain.EmployeeDetail, error) {
	if dto.UsuarioID <= 0 {
		return nil, domain.NewValidationError("usuario_id is required")
	}
	if _, err := s.users.FindByID(ctx, dto.UsuarioID); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	if _, err := s.employees.FindByUserID(ctx, dto.UsuarioID); err == nil {
		return nil, domain.ErrUserAlreadyEmployee
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	e := &domain.Employee{UsuarioID: dto.UsuarioID}
	if err := s.apply(ctx, e, dto.TurnoID, dto.Telefono, dto.Direccion, dto.DPI); err != nil {
		return nil, err
	}
	created, err := s.employees.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, created.ID)
}

func (s *EmployeeService) GetByID(ctx context.Context, id int) (*domain.EmployeeDetail, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeDetail, error) {
	return s.employees.List(ctx)
}

// Update overwrites shift and contact data; empty fields clear the column.
func (s *EmployeeService) Update(ctx context.Context, id int, dto domain.EmployeeUpdateDTO) (*domain.EmployeeDetail, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e := current.Employee
	if err := s.apply(ctx, &e, dto.TurnoID, dto.Telefono, dto.Direccion, dto.DPI); err != nil {
		return nil, err
	}
	if _, err := s.employees.Update(ctx, &e); err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}
	return s.GetByID(ctx, id)
}

// SetActive toggles the linked user account, which is what login checks.
func (s *EmployeeService) SetActive(ctx context.Context, id int, active bool) (*domain.EmployeeDetail, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetActive(ctx, e.UsuarioID, active); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	logger.FromContext(ctx).WithFields(logrus.Fields{"empleado_id": id, "activo": active}).Info("employee status changed")
	return s.GetByID(ctx, id)
}

// Delete refuses while tickets are attributed to the employee.
func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.tickets.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("employee", n, "tickets")
	}
	return notFound(s.employees.Delete(ctx, id), domain.ErrEmployeeNotFound)
}

func (s *EmployeeService) apply(ctx context.Context, e *domain.Employee, shiftID int, phone, address, dpi string) error {
	if shiftID > 0 {
		if _, err := s.shifts.FindByID(ctx, shiftID); err != nil {
			return notFound(err, domain.ErrShiftNotFound)
		}
	}
	dpi = strings.TrimSpace(dpi)
	if dpi != "" {
		other, err := s.employees.FindByDPI(ctx, dpi)
		if err == nil && other.ID != e.ID {
			return domain.ErrDuplicateDPI
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	e.TurnoID = domain.NullInt(shiftID)
	e.Telefono = domain.NullString(strings.TrimSpace(phone))
	e.Direccion = domain.NullString(strings.TrimSpace(address))
	e.DPI = domain.NullString(dpi)
	return nil
}

// --- Shifts ---

func (s *EmployeeService) CreateShift(ctx context.Context, dto domain.ShiftDTO) (*domain.Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.shifts.Create(ctx, &domain.Shift{
		Descripcion: domain.NullString(strings.TrimSpace(dto.Descripcion)),
		HoraInicio:  dto.HoraInicio,
		HoraFin:     dto.HoraFin,
	})
}

func (s *EmployeeService) GetShift(ctx context.Context, id int) (*domain.Shift, error) {
	sh, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrShiftNotFound)
	}
	return sh, nil
}

func (s *EmployeeService) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.shifts.List(ctx)
}

// UpdateShift changes only the fields present in dto.
func (s *EmployeeService) UpdateShift(ctx context.Context, id int, dto domain.ShiftDTO) (*domain.Shift, error) {
	if err := dto.ValidatePartial(); err != nil {
		return nil, err
	}
	sh, err := s.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := strings.TrimSpace(dto.Descripcion); d != "" {
		sh.Descripcion = domain.NullString(d)
	}
	if dto.HoraInicio != "" {
		sh.HoraInicio = dto.HoraInicio
	}
	if dto.HoraFin != "" {
		sh.HoraFin = dto.HoraFin
	}
	updated, err := s.shifts.Update(ctx, sh)
	if err != nil {
		return nil, notFound(err, domain.ErrShiftNotFound)
	}
	return updated, nil
}

// DeleteShift refuses while employees are assigned to the shift.
func (s *EmployeeService) DeleteShift(ctx context.Context, id int) error {
	if _, err := s.GetShift(ctx, id); err != nil {
		return err
	}
	n, err := s.employees.CountByShift(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("shift", n, "employees")
	}
	return notFound(s.shifts.Delete(ctx, id), domain.ErrShiftNotFound)
}
