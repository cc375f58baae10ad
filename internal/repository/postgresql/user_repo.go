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

const userSelect = `
SELECT u.id, u.nombre, u.correo, u.password, u.rol_id, r.nombre AS rol, u.activo, u.fecha_creacion
FROM usuarios u
JOIN roles r ON r.id = u.rol_id`

type pgUserRepository struct {
	db *sqlx.DB
}

func NewPgUserRepository(db *sqlx.DB) repository.UserRepository {
	return &pgUserRepository{db: db}
}

// Create stores the user; user.Password must already be a bcrypt hash.
func (r *pgUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO usuarios (nombre, correo, password, rol_id, activo)
	          VALUES ($1, $2, $3, $4, TRUE)
	          RETURNING id, activo, fecha_creacion`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, user.Nombre, user.Correo, user.Password, user.RolID).
		Scan(&user.ID, &user.Activo, &user.FechaCreacion)
	if err != nil {
		switch {
		case isUniqueViolation(err, "usuarios_correo_key"):
			return nil, fmt.Errorf("%w: %s", domain.ErrEmailAlreadyRegistered, user.Correo)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: %d", domain.ErrRoleNotFound, user.RolID)
		}
		return nil, fmt.Errorf("UserRepository.Create: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return r.findOne(ctx, "UserRepository.FindByID", userSelect+` WHERE u.id = $1`, id)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "UserRepository.FindByEmail", userSelect+` WHERE LOWER(u.correo) = LOWER($1)`, email)
}

func (r *pgUserRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var u domain.User
	if err := conn(ctx, r.db).GetContext(ctx, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.FechaCreacion = u.FechaCreacion.UTC()
	return &u, nil
}

func (r *pgUserRepository) SetActive(ctx context.Context, id int, active bool) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE usuarios SET activo = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("UserRepository.SetActive: %w", err)
	}
	return expectOne(res, "UserRepository.SetActive")
}

func (r *pgUserRepository) CountByRole(ctx context.Context, roleID int) (int, error) {
	return count(ctx, r.db, "UserRepository.CountByRole", `SELECT COUNT(*) FROM usuarios WHERE rol_id = $1`, roleID)
}
