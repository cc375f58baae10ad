package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"

	"github.com/jmoiron/sqlx"
)

const ticketColumns = `t.id, t.vehiculo_id, t.espacio_id, t.empleado_id, t.tarifa_id, t.hora_entrada, t.hora_salida, t.estado`

const ticketDetailSelect = `
SELECT ` + ticketColumns + `,
       v.placa, v.marca, v.modelo, v.color,
       c.nombre AS cliente_nombre, c.telefono AS cliente_telefono,
       e.codigo AS espacio_codigo, z.nombre AS zona_nombre,
       tar.descripcion AS tarifa_descripcion, tar.precio_hora,
       u.nombre AS empleado_nombre
FROM tickets t
JOIN tarifas tar ON tar.id = t.tarifa_id
LEFT JOIN vehiculos v ON v.id = t.vehiculo_id
LEFT JOIN clientes c ON c.id = v.cliente_id
LEFT JOIN espacios e ON e.id = t.espacio_id
LEFT JOIN zonas z ON z.id = e.zona_id
LEFT JOIN empleados emp ON emp.id = t.empleado_id
LEFT JOIN usuarios u ON u.id = emp.usuario_id`

type pgTicketRepository struct {
	db *sqlx.DB
}

func NewPgTicketRepository(db *sqlx.DB) repository.TicketRepository {
	return &pgTicketRepository{db: db}
}

func (r *pgTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	query := `INSERT INTO tickets (vehiculo_id, espacio_id, empleado_id, tarifa_id, hora_entrada, estado)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		ticket.VehiculoID, ticket.EspacioID, ticket.EmpleadoID, ticket.TarifaID, ticket.HoraEntrada, ticket.Estado,
	).Scan(&ticket.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, "tickets_one_active_per_vehicle"):
			return nil, fmt.Errorf("%w: vehicle %d", domain.ErrDuplicateActiveTicket, ticket.VehiculoID)
		case isUniqueViolation(err, "tickets_one_active_per_space"):
			return nil, fmt.Errorf("%w: space %d", domain.ErrSpaceUnavailable, ticket.EspacioID)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: %v", repository.ErrNotFound, err)
		}
		return nil, fmt.Errorf("TicketRepository.Create: %w", err)
	}
	return ticket, nil
}

func (r *pgTicketRepository) FindForUpdate(ctx context.Context, id int) (*domain.TicketForBilling, error) {
	query := `SELECT ` + ticketColumns + `, tar.precio_hora
	          FROM tickets t
	          JOIN tarifas tar ON tar.id = t.tarifa_id
	          WHERE t.id = $1
	          FOR UPDATE OF t`
	var tk domain.TicketForBilling
	if err := conn(ctx, r.db).GetContext(ctx, &tk, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("TicketRepository.FindForUpdate: %w", err)
	}
	return &tk, nil
}

func (r *pgTicketRepository) FindDetailByID(ctx context.Context, id int) (*domain.TicketDetail, error) {
	var tk domain.TicketDetail
	if err := conn(ctx, r.db).GetContext(ctx, &tk, ticketDetailSelect+` WHERE t.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("TicketRepository.FindDetailByID: %w", err)
	}
	return &tk, nil
}

func (r *pgTicketRepository) HasActiveForVehicle(ctx context.Context, vehicleID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tickets WHERE vehiculo_id = $1 AND estado = $2)`
	if err := conn(ctx, r.db).GetContext(ctx, &exists, query, vehicleID, domain.TicketActive); err != nil {
		return false, fmt.Errorf("TicketRepository.HasActiveForVehicle: %w", err)
	}
	return exists, nil
}

// Close moves an ACTIVO ticket to CERRADO. A ticket that is no longer active
// is reported as already closed and left untouched.
func (r *pgTicketRepository) Close(ctx context.Context, id int, exitTime time.Time) error {
	query := `UPDATE tickets SET hora_salida = $2, estado = $3 WHERE id = $1 AND estado = $4`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, exitTime, domain.TicketClosed, domain.TicketActive)
	if err != nil {
		return fmt.Errorf("TicketRepository.Close: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("TicketRepository.Close (rows affected): %w", err)
	}
	if n == 0 {
		return domain.ErrTicketAlreadyClosed
	}
	return nil
}

func (r *pgTicketRepository) List(ctx context.Context, f domain.TicketFilterDTO) ([]domain.TicketDetail, error) {
	var w filter
	if f.Estado != "" {
		w.add("t.estado = $%d", f.Estado)
	}
	if f.FechaInicio != "" {
		w.add("t.hora_entrada::date >= $%d::date", f.FechaInicio)
	}
	if f.FechaFin != "" {
		w.add("t.hora_entrada::date <= $%d::date", f.FechaFin)
	}
	return r.selectDetails(ctx, "TicketRepository.List", ticketDetailSelect+w.where()+` ORDER BY t.hora_entrada DESC`, w.args...)
}

func (r *pgTicketRepository) ListActive(ctx context.Context) ([]domain.TicketDetail, error) {
	return r.selectDetails(ctx, "TicketRepository.ListActive",
		ticketDetailSelect+` WHERE t.estado = $1 ORDER BY t.hora_entrada DESC`, domain.TicketActive)
}

func (r *pgTicketRepository) ListByPlate(ctx context.Context, plate string) ([]domain.TicketDetail, error) {
	return r.selectDetails(ctx, "TicketRepository.ListByPlate",
		ticketDetailSelect+` WHERE v.placa = $1 ORDER BY t.hora_entrada DESC`, plate)
}

func (r *pgTicketRepository) selectDetails(ctx context.Context, op, query string, args ...any) ([]domain.TicketDetail, error) {
	tickets := []domain.TicketDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tickets, nil
}

func (r *pgTicketRepository) CountByVehicle(ctx context.Context, vehicleID int) (int, error) {
	return count(ctx, r.db, "TicketRepository.CountByVehicle", `SELECT COUNT(*) FROM tickets WHERE vehiculo_id = $1`, vehicleID)
}

func (r *pgTicketRepository) CountBySpace(ctx context.Context, spaceID int) (int, error) {
	return count(ctx, r.db, "TicketRepository.CountBySpace", `SELECT COUNT(*) FROM tickets WHERE espacio_id = $1`, spaceID)
}

func (r *pgTicketRepository) CountByTariff(ctx context.Context, tariffID int) (int, error) {
	return count(ctx, r.db, "TicketRepository.CountByTariff", `SELECT COUNT(*) FROM tickets WHERE tarifa_id = $1`, tariffID)
}

func (r *pgTicketRepository) CountByEmployee(ctx context.Context, employeeID int) (int, error) {
	return count(ctx, r.db, "TicketRepository.CountByEmployee", `SELECT COUNT(*) FROM tickets WHERE empleado_id = $1`, employeeID)
}

func count(ctx context.Context, db *sqlx.DB, op, query string, args ...any) (int, error) {
	var n int
	if err := conn(ctx, db).GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *sqlx.DB, op, table string, id int) error {
	res, err := conn(ctx, db).ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrReferenced)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectOne(res, op)
}

// expectOne maps an UPDATE or DELETE that matched no row to ErrNotFound.
func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s (rows affected): %w", op, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
