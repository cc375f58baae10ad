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

const fineDetailSelect = `
SELECT m.id, m.ticket_id, m.motivo, m.monto, m.fecha,
       v.placa, c.nombre AS cliente_nombre
FROM multas m
LEFT JOIN tickets t ON t.id = m.ticket_id
LEFT JOIN vehiculos v ON v.id = t.vehiculo_id
LEFT JOIN clientes c ON c.id = v.cliente_id`

type pgFineRepository struct {
	db *sqlx.DB
}

func NewPgFineRepository(db *sqlx.DB) repository.FineRepository {
	return &pgFineRepository{db: db}
}

func (r *pgFineRepository) Create(ctx context.Context, fine *domain.Fine) (*domain.Fine, error) {
	query := `INSERT INTO multas (ticket_id, motivo, monto, fecha) VALUES ($1, $2, $3, $4) RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, fine.TicketID, fine.Motivo, fine.Monto, fine.Fecha).Scan(&fine.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTicketNotFound, fine.TicketID)
		}
		return nil, fmt.Errorf("FineRepository.Create: %w", err)
	}
	return fine, nil
}

func (r *pgFineRepository) FindByID(ctx context.Context, id int) (*domain.FineDetail, error) {
	var f domain.FineDetail
	if err := conn(ctx, r.db).GetContext(ctx, &f, fineDetailSelect+` WHERE m.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("FineRepository.FindByID: %w", err)
	}
	return &f, nil
}

func (r *pgFineRepository) List(ctx context.Context) ([]domain.FineDetail, error) {
	fines := []domain.FineDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &fines, fineDetailSelect+` ORDER BY m.fecha DESC`); err != nil {
		return nil, fmt.Errorf("FineRepository.List: %w", err)
	}
	return fines, nil
}

func (r *pgFineRepository) ListByTicket(ctx context.Context, ticketID int) ([]domain.FineDetail, error) {
	fines := []domain.FineDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &fines, fineDetailSelect+` WHERE m.ticket_id = $1 ORDER BY m.fecha DESC`, ticketID); err != nil {
		return nil, fmt.Errorf("FineRepository.ListByTicket: %w", err)
	}
	return fines, nil
}

func (r *pgFineRepository) Update(ctx context.Context, fine *domain.Fine) (*domain.Fine, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE multas SET motivo = $2, monto = $3 WHERE id = $1`, fine.ID, fine.Motivo, fine.Monto)
	if err != nil {
		return nil, fmt.Errorf("FineRepository.Update: %w", err)
	}
	if err := expectOne(res, "FineRepository.Update"); err != nil {
		return nil, err
	}
	return fine, nil
}

func (r *pgFineRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "FineRepository.Delete", "multas", id)
}
