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

const spaceDetailSelect = `
SELECT e.id, e.zona_id, e.codigo, e.disponible, z.nombre AS zona_nombre
FROM espacios e
LEFT JOIN zonas z ON z.id = e.zona_id`

type pgSpaceRepository struct {
	db *sqlx.DB
}

func NewPgSpaceRepository(db *sqlx.DB) repository.SpaceRepository {
	return &pgSpaceRepository{db: db}
}

func (r *pgSpaceRepository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	query := `INSERT INTO espacios (zona_id, codigo, disponible) VALUES ($1, $2, $3) RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, space.ZonaID, space.Codigo, space.Disponible).Scan(&space.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, "espacios_codigo_key"):
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSpaceCode, space.Codigo)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: zone %d", domain.ErrZoneNotFound, space.ZonaID)
		}
		return nil, fmt.Errorf("SpaceRepository.Create: %w", err)
	}
	return space, nil
}

func (r *pgSpaceRepository) FindByID(ctx context.Context, id int) (*domain.SpaceDetail, error) {
	var s domain.SpaceDetail
	if err := conn(ctx, r.db).GetContext(ctx, &s, spaceDetailSelect+` WHERE e.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SpaceRepository.FindByID: %w", err)
	}
	return &s, nil
}

func (r *pgSpaceRepository) FindForUpdate(ctx context.Context, id int) (*domain.Space, error) {
	return r.findSpace(ctx, "SpaceRepository.FindForUpdate",
		`SELECT id, zona_id, codigo, disponible FROM espacios WHERE id = $1 FOR UPDATE`, id)
}

func (r *pgSpaceRepository) FindByCode(ctx context.Context, code string) (*domain.Space, error) {
	return r.findSpace(ctx, "SpaceRepository.FindByCode",
		`SELECT id, zona_id, codigo, disponible FROM espacios WHERE codigo = $1`, code)
}

func (r *pgSpaceRepository) findSpace(ctx context.Context, op, query string, arg any) (*domain.Space, error) {
	var s domain.Space
	if err := conn(ctx, r.db).GetContext(ctx, &s, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

func (r *pgSpaceRepository) List(ctx context.Context, f domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	return r.list(ctx, "SpaceRepository.List", f, false)
}

func (r *pgSpaceRepository) ListAvailable(ctx context.Context, f domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	return r.list(ctx, "SpaceRepository.ListAvailable", f, true)
}

func (r *pgSpaceRepository) list(ctx context.Context, op string, f domain.SpaceFilterDTO, onlyAvailable bool) ([]domain.SpaceDetail, error) {
	var w filter
	if f.ZonaID > 0 {
		w.add("e.zona_id = $%d", f.ZonaID)
	}
	if onlyAvailable {
		w.add("e.disponible = $%d", true)
	}
	spaces := []domain.SpaceDetail{}
	query := spaceDetailSelect + w.where() + ` ORDER BY e.codigo`
	if err := conn(ctx, r.db).SelectContext(ctx, &spaces, query, w.args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return spaces, nil
}

func (r *pgSpaceRepository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	query := `UPDATE espacios SET zona_id = $2, codigo = $3, disponible = $4 WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, space.ID, space.ZonaID, space.Codigo, space.Disponible)
	if err != nil {
		switch {
		case isUniqueViolation(err, "espacios_codigo_key"):
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSpaceCode, space.Codigo)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: zone %d", domain.ErrZoneNotFound, space.ZonaID)
		}
		return nil, fmt.Errorf("SpaceRepository.Update: %w", err)
	}
	if err := expectOne(res, "SpaceRepository.Update"); err != nil {
		return nil, err
	}
	return space, nil
}

func (r *pgSpaceRepository) SetAvailability(ctx context.Context, id int, available bool) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE espacios SET disponible = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("SpaceRepository.SetAvailability: %w", err)
	}
	return expectOne(res, "SpaceRepository.SetAvailability")
}

func (r *pgSpaceRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "SpaceRepository.Delete", "espacios", id)
}

func (r *pgSpaceRepository) CountByZone(ctx context.Context, zoneID int) (int, error) {
	return count(ctx, r.db, "SpaceRepository.CountByZone", `SELECT COUNT(*) FROM espacios WHERE zona_id = $1`, zoneID)
}
