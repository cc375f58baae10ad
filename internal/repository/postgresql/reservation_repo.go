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

const reservationColumns = `r.id, r.cliente_id, r.espacio_id, r.fecha_reserva, r.fecha_inicio, r.fecha_fin, r.estado`

const reservationDetailSelect = `
SELECT ` + reservationColumns + `,
       c.nombre AS cliente_nombre, c.telefono AS cliente_telefono,
       e.codigo AS espacio_codigo, z.nombre AS zona_nombre
FROM reservas r
LEFT JOIN clientes c ON c.id = r.cliente_id
LEFT JOIN espacios e ON e.id = r.espacio_id
LEFT JOIN zonas z ON z.id = e.zona_id`

type pgReservationRepository struct {
	db *sqlx.DB
}

func NewPgReservationRepository(db *sqlx.DB) repository.ReservationRepository {
	return &pgReservationRepository{db: db}
}

func (r *pgReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query := `INSERT INTO reservas (cliente_id, espacio_id, fecha_reserva, fecha_inicio, fecha_fin, estado)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		res.ClienteID, res.EspacioID, res.FechaReserva, res.FechaInicio, res.FechaFin, res.Estado,
	).Scan(&res.ID)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create: %w", err)
	}
	return res, nil
}

func (r *pgReservationRepository) FindByID(ctx context.Context, id int) (*domain.ReservationDetail, error) {
	var d domain.ReservationDetail
	if err := conn(ctx, r.db).GetContext(ctx, &d, reservationDetailSelect+` WHERE r.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindByID: %w", err)
	}
	return &d, nil
}

func (r *pgReservationRepository) FindForUpdate(ctx context.Context, id int) (*domain.Reservation, error) {
	var res domain.Reservation
	query := `SELECT ` + reservationColumns + ` FROM reservas r WHERE r.id = $1 FOR UPDATE`
	if err := conn(ctx, r.db).GetContext(ctx, &res, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindForUpdate: %w", err)
	}
	return &res, nil
}

func (r *pgReservationRepository) List(ctx context.Context, f domain.ReservationFilterDTO) ([]domain.ReservationDetail, error) {
	var w filter
	if f.Estado != "" {
		w.add("r.estado = $%d", f.Estado)
	}
	if f.ClienteID > 0 {
		w.add("r.cliente_id = $%d", f.ClienteID)
	}
	if f.FechaInicio != "" {
		w.add("r.fecha_inicio::date >= $%d::date", f.FechaInicio)
	}
	if f.FechaFin != "" {
		w.add("r.fecha_fin::date <= $%d::date", f.FechaFin)
	}
	out := []domain.ReservationDetail{}
	query := reservationDetailSelect + w.where() + ` ORDER BY r.fecha_inicio DESC`
	if err := conn(ctx, r.db).SelectContext(ctx, &out, query, w.args...); err != nil {
		return nil, fmt.Errorf("ReservationRepository.List: %w", err)
	}
	return out, nil
}

func (r *pgReservationRepository) HasOverlap(ctx context.Context, spaceID int, start, end time.Time, excludeID int) (bool, error) {
	query := `SELECT EXISTS (
	              SELECT 1 FROM reservas
	              WHERE espacio_id = $1 AND estado = $2 AND id <> $5
	                AND fecha_inicio <= $4 AND fecha_fin >= $3
	          )`
	var overlap bool
	if err := conn(ctx, r.db).GetContext(ctx, &overlap, query, spaceID, domain.ReservationActive, start, end, excludeID); err != nil {
		return false, fmt.Errorf("ReservationRepository.HasOverlap: %w", err)
	}
	return overlap, nil
}

func (r *pgReservationRepository) UpdatePeriod(ctx context.Context, id int, start, end time.Time) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE reservas SET fecha_inicio = $2, fecha_fin = $3 WHERE id = $1`, id, start, end)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdatePeriod: %w", err)
	}
	return expectOne(res, "ReservationRepository.UpdatePeriod")
}

func (r *pgReservationRepository) SetStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE reservas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("ReservationRepository.SetStatus: %w", err)
	}
	return expectOne(res, "ReservationRepository.SetStatus")
}
