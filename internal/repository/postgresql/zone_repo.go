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

const zoneDetailSelect = `
SELECT z.id, z.nombre, z.descripcion,
       COUNT(e.id) AS total_espacios,
       COUNT(e.id) FILTER (WHERE e.disponible) AS espacios_disponibles
FROM zonas z
LEFT JOIN espacios e ON e.zona_id = z.id`

type pgZoneRepository struct {
	db *sqlx.DB
}

func NewPgZoneRepository(db *sqlx.DB) repository.ZoneRepository {
	return &pgZoneRepository{db: db}
}

func (r *pgZoneRepository) Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	err := conn(ctx, r.db).QueryRowxContext(ctx,
		`INSERT INTO zonas (nombre, descripcion) VALUES ($1, $2) RETURNING id`, zone.Nombre, zone.Descripcion,
	).Scan(&zone.ID)
	if err != nil {
		return nil, fmt.Errorf("ZoneRepository.Create: %w", err)
	}
	return zone, nil
}

func (r *pgZoneRepository) FindByID(ctx context.Context, id int) (*domain.ZoneDetail, error) {
	var z domain.ZoneDetail
	query := zoneDetailSelect + ` WHERE z.id = $1 GROUP BY z.id`
	if err := conn(ctx, r.db).GetContext(ctx, &z, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ZoneRepository.FindByID: %w", err)
	}
	return &z, nil
}

func (r *pgZoneRepository) List(ctx context.Context) ([]domain.ZoneDetail, error) {
	zones := []domain.ZoneDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &zones, zoneDetailSelect+` GROUP BY z.id ORDER BY z.nombre`); err != nil {
		return nil, fmt.Errorf("ZoneRepository.List: %w", err)
	}
	return zones, nil
}

func (r *pgZoneRepository) Update(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE zonas SET nombre = $2, descripcion = $3 WHERE id = $1`, zone.ID, zone.Nombre, zone.Descripcion)
	if err != nil {
		return nil, fmt.Errorf("ZoneRepository.Update: %w", err)
	}
	if err := expectOne(res, "ZoneRepository.Update"); err != nil {
		return nil, err
	}
	return zone, nil
}

func (r *pgZoneRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "ZoneRepository.Delete", "zonas", id)
}
