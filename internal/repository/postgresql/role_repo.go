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

const roleDetailSelect = `
SELECT r.id, r.nombre, r.descripcion, COUNT(u.id) AS total_usuarios
FROM roles r
LEFT JOIN usuarios u ON u.rol_id = r.id`

type pgRoleRepository struct {
	db *sqlx.DB
}

func NewPgRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &pgRoleRepository{db: db}
}

func (r *pgRoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	err := conn(ctx, r.db).QueryRowxContext(ctx,
		`INSERT INTO roles (nombre, descripcion) VALUES ($1, $2) RETURNING id`, role.Nombre, role.Descripcion,
	).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err, "roles_nombre_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRoleName, role.Nombre)
		}
		return nil, fmt.Errorf("RoleRepository.Create: %w", err)
	}
	return role, nil
}

func (r *pgRoleRepository) FindByID(ctx context.Context, id int) (*domain.RoleDetail, error) {
	var d domain.RoleDetail
	if err := conn(ctx, r.db).GetContext(ctx, &d, roleDetailSelect+` WHERE r.id = $1 GROUP BY r.id`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("RoleRepository.FindByID: %w", err)
	}
	return &d, nil
}

func (r *pgRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	query := `SELECT id, nombre, descripcion FROM roles WHERE UPPER(nombre) = UPPER($1)`
	if err := conn(ctx, r.db).GetContext(ctx, &role, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("RoleRepository.FindByName: %w", err)
	}
	return &role, nil
}

func (r *pgRoleRepository) List(ctx context.Context) ([]domain.RoleDetail, error) {
	roles := []domain.RoleDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &roles, roleDetailSelect+` GROUP BY r.id ORDER BY r.nombre`); err != nil {
		return nil, fmt.Errorf("RoleRepository.List: %w", err)
	}
	return roles, nil
}

func (r *pgRoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE roles SET nombre = $2, descripcion = $3 WHERE id = $1`, role.ID, role.Nombre, role.Descripcion)
	if err != nil {
		if isUniqueViolation(err, "roles_nombre_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRoleName, role.Nombre)
		}
		return nil, fmt.Errorf("RoleRepository.Update: %w", err)
	}
	if err := expectOne(res, "RoleRepository.Update"); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *pgRoleRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "RoleRepository.Delete", "roles", id)
}
