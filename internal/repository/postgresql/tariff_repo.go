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

type pgTariffRepository struct {
	db *sqlx.DB
}

func NewPgTariffRepository(db *sqlx.DB) repository.TariffRepository {
	return &pgTariffRepository{db: db}
}

func (r *pgTariffRepository) Create(ctx context.Context, t *domain.Tariff) (*domain.Tariff, error) {
	err := conn(ctx, r.db).QueryRowxContext(ctx,
		`INSERT INTO tarifas (descripcion, precio_hora) VALUES ($1, $2) RETURNING id`, t.Descripcion, t.PrecioHora,
	).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("TariffRepository.Create: %w", err)
	}
	return t, nil
}

func (r *pgTariffRepository) FindByID(ctx context.Context, id int) (*domain.Tariff, error) {
	var t domain.Tariff
	if err := conn(ctx, r.db).GetContext(ctx, &t, `SELECT id, descripcion, precio_hora FROM tarifas WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("TariffRepository.FindByID: %w", err)
	}
	return &t, nil
}

func (r *pgTariffRepository) List(ctx context.Context) ([]domain.Tariff, error) {
	tariffs := []domain.Tariff{}
	if err := conn(ctx, r.db).SelectContext(ctx, &tariffs, `SELECT id, descripcion, precio_hora FROM tarifas ORDER BY precio_hora`); err != nil {
		return nil, fmt.Errorf("TariffRepository.List: %w", err)
	}
	return tariffs, nil
}

func (r *pgTariffRepository) Update(ctx context.Context, t *domain.Tariff) (*domain.Tariff, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE tarifas SET descripcion = $2, precio_hora = $3 WHERE id = $1`, t.ID, t.Descripcion, t.PrecioHora)
	if err != nil {
		return nil, fmt.Errorf("TariffRepository.Update: %w", err)
	}
	if err := expectOne(res, "TariffRepository.Update"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTariffRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "TariffRepository.Delete", "tarifas", id)
}
