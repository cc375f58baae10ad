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

type pgPaymentTypeRepository struct {
	db *sqlx.DB
}

func NewPgPaymentTypeRepository(db *sqlx.DB) repository.PaymentTypeRepository {
	return &pgPaymentTypeRepository{db: db}
}

func (r *pgPaymentTypeRepository) Create(ctx context.Context, pt *domain.PaymentType) (*domain.PaymentType, error) {
	err := conn(ctx, r.db).QueryRowxContext(ctx, `INSERT INTO tipos_pago (nombre) VALUES ($1) RETURNING id`, pt.Nombre).Scan(&pt.ID)
	if err != nil {
		if isUniqueViolation(err, "tipos_pago_nombre_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePaymentType, pt.Nombre)
		}
		return nil, fmt.Errorf("PaymentTypeRepository.Create: %w", err)
	}
	return pt, nil
}

func (r *pgPaymentTypeRepository) FindByID(ctx context.Context, id int) (*domain.PaymentType, error) {
	return r.findOne(ctx, "PaymentTypeRepository.FindByID", `SELECT id, nombre FROM tipos_pago WHERE id = $1`, id)
}

func (r *pgPaymentTypeRepository) FindByName(ctx context.Context, name string) (*domain.PaymentType, error) {
	return r.findOne(ctx, "PaymentTypeRepository.FindByName", `SELECT id, nombre FROM tipos_pago WHERE UPPER(nombre) = UPPER($1)`, name)
}

func (r *pgPaymentTypeRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.PaymentType, error) {
	var pt domain.PaymentType
	if err := conn(ctx, r.db).GetContext(ctx, &pt, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &pt, nil
}

func (r *pgPaymentTypeRepository) List(ctx context.Context) ([]domain.PaymentType, error) {
	types := []domain.PaymentType{}
	if err := conn(ctx, r.db).SelectContext(ctx, &types, `SELECT id, nombre FROM tipos_pago ORDER BY nombre`); err != nil {
		return nil, fmt.Errorf("PaymentTypeRepository.List: %w", err)
	}
	return types, nil
}

func (r *pgPaymentTypeRepository) Update(ctx context.Context, pt *domain.PaymentType) (*domain.PaymentType, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE tipos_pago SET nombre = $2 WHERE id = $1`, pt.ID, pt.Nombre)
	if err != nil {
		if isUniqueViolation(err, "tipos_pago_nombre_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePaymentType, pt.Nombre)
		}
		return nil, fmt.Errorf("PaymentTypeRepository.Update: %w", err)
	}
	if err := expectOne(res, "PaymentTypeRepository.Update"); err != nil {
		return nil, err
	}
	return pt, nil
}

func (r *pgPaymentTypeRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "PaymentTypeRepository.Delete", "tipos_pago", id)
}
