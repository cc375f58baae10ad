package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"

	"github.com/jmoiron/sqlx"
)

const employeeColumns = `e.id, e.usuario_id, e.turno_id, e.telefono, e.direccion, e.dpi`

const employeeDetailSelect = `
SELECT ` + employeeColumns + `,
       u.nombre AS usuario_nombre, u.correo AS usuario_correo, u.activo AS usuario_activo,
       r.nombre AS rol_nombre,
       t.descripcion AS turno_descripcion, t.hora_inicio::text AS hora_inicio, t.hora_fin::text AS hora_fin
FROM empleados e
LEFT JOIN usuarios u ON u.id = e.usuario_id
LEFT JOIN roles r ON r.id = u.rol_id
LEFT JOIN turnos t ON t.id = e.turno_id`

type pgEmployeeRepository struct {
	db *sqlx.DB
}

func NewPgEmployeeRepository(db *sqlx.DB) repository.EmployeeRepository {
	return &pgEmployeeRepository{db: db}
}

func employeeWriteError(op string, e *domain.Employee, err error) error {
	switch {
	case isUniqueViolation(err, "empleados_usuario_id_key"):
		return fmt.Errorf("%w: user %d", domain.ErrUserAlreadyEmployee, e.UsuarioID)
	case isUniqueViolation(err, "empleados_dpi_key"):
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDPI, e.DPI.String)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *pgEmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query := `INSERT INTO empleados (usuario_id, turno_id, telefono, direccion, dpi)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, e.UsuarioID, e.TurnoID, e.Telefono, e.Direccion, e.DPI).Scan(&e.ID)
	if err != nil {
		return nil, employeeWriteError("EmployeeRepository.Create", e, err)
	}
	return e, nil
}

func (r *pgEmployeeRepository) FindByID(ctx context.Context, id int) (*domain.EmployeeDetail, error) {
	var d domain.EmployeeDetail
	if err := conn(ctx, r.db).GetContext(ctx, &d, employeeDetailSelect+` WHERE e.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("EmployeeRepository.FindByID: %w", err)
	}
	return &d, nil
}

func (r *pgEmployeeRepository) FindByUserID(ctx context.Context, userID int) (*domain.Employee, error) {
	return r.findOne(ctx, "EmployeeRepository.FindByUserID", `SELECT `+employeeColumns+` FROM empleados e WHERE e.usuario_id = $1`, userID)
}

func (r *pgEmployeeRepository) FindByDPI(ctx context.Context, dpi string) (*domain.Employee, error) {
	return r.findOne(ctx, "EmployeeRepository.FindByDPI", `SELECT `+employeeColumns+` FROM empleados e WHERE e.dpi = $1`, dpi)
}

func (r *pgEmployeeRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.Employee, error) {
	var e domain.Employee
	if err := conn(ctx, r.db).GetContext(ctx, &e, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func (r *pgEmployeeRepository) List(ctx context.Context) ([]domain.EmployeeDetail, error) {
	out := []domain.EmployeeDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &out, employeeDetailSelect+` ORDER BY u.nombre`); err != nil {
		return nil, fmt.Errorf("EmployeeRepository.List: %w", err)
	}
	return out, nil
}

func (r *pgEmployeeRepository) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query := `UPDATE empleados SET turno_id = $2, telefono = $3, direccion = $4, dpi = $5 WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, e.ID, e.TurnoID, e.Telefono, e.Direccion, e.DPI)
	if err != nil {
		return nil, employeeWriteError("EmployeeRepository.Update", e, err)
	}
	if err := expectOne(res, "EmployeeRepository.Update"); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *pgEmployeeRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "EmployeeRepository.Delete", "empleados", id)
}

func (r *pgEmployeeRepository) CountByShift(ctx context.Context, shiftID int) (int, error) {
	return count(ctx, r.db, "EmployeeRepository.CountByShift", `SELECT COUNT(*) FROM empleados WHERE turno_id = $1`, shiftID)
}
