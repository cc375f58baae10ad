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

// TIME columns are read back as text so they round-trip as HH:MM:SS.
const shiftSelect = `SELECT id, descripcion, hora_inicio::text AS hora_inicio, hora_fin::text AS hora_fin FROM turnos`

type pgShiftRepository struct {
	db *sqlx.DB
}

func NewPgShiftRepository(db *sqlx.DB) repository.ShiftRepository {
	return &pgShiftRepository{db: db}
}

func (r *pgShiftRepository) Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	query := `INSERT INTO turnos (descripcion, hora_inicio, hora_fin) VALUES ($1, $2::time, $3::time) RETURNING id`
	if err := conn(ctx, r.db).QueryRowxContext(ctx, query, s.Descripcion, s.HoraInicio, s.HoraFin).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("ShiftRepository.Create: %w", err)
	}
	return s, nil
}

func (r *pgShiftRepository) FindByID(ctx context.Context, id int) (*domain.Shift, error) {
	var s domain.Shift
	if err := conn(ctx, r.db).GetContext(ctx, &s, shiftSelect+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ShiftRepository.FindByID: %w", err)
	}
	return &s, nil
}

func (r *pgShiftRepository) List(ctx context.Context) ([]domain.Shift, error) {
	shifts := []domain.Shift{}
	if err := conn(ctx, r.db).SelectContext(ctx, &shifts, shiftSelect+` ORDER BY hora_inicio`); err != nil {
		return nil, fmt.Errorf("ShiftRepository.List: %w", err)
	}
	return shifts, nil
}

func (r *pgShiftRepository) Update(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	query := `UPDATE turnos SET descripcion = $2, hora_inicio = $3::time, hora_fin = $4::time WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, s.ID, s.Descripcion, s.HoraInicio, s.HoraFin)
	if err != nil {
		return nil, fmt.Errorf("ShiftRepository.Update: %w", err)
	}
	if err := expectOne(res, "ShiftRepository.Update"); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgShiftRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "ShiftRepository.Delete", "turnos", id)
}
