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

const vehicleDetailSelect = `
SELECT v.id, v.cliente_id, v.placa, v.marca, v.modelo, v.color,
       c.nombre AS cliente_nombre, c.telefono AS cliente_telefono
FROM vehiculos v
LEFT JOIN clientes c ON c.id = v.cliente_id`

type pgVehicleRepository struct {
	db *sqlx.DB
}

func NewPgVehicleRepository(db *sqlx.DB) repository.VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehiculos (cliente_id, placa, marca, modelo, color) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, v.ClienteID, v.Placa, v.Marca, v.Modelo, v.Color).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err, "vehiculos_placa_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlate, v.Placa)
		}
		return nil, fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	return v, nil
}

func (r *pgVehicleRepository) FindByID(ctx context.Context, id int) (*domain.VehicleDetail, error) {
	return r.findDetail(ctx, "VehicleRepository.FindByID", vehicleDetailSelect+` WHERE v.id = $1`, id)
}

func (r *pgVehicleRepository) FindByPlate(ctx context.Context, plate string) (*domain.VehicleDetail, error) {
	return r.findDetail(ctx, "VehicleRepository.FindByPlate", vehicleDetailSelect+` WHERE v.placa = $1`, plate)
}

func (r *pgVehicleRepository) findDetail(ctx context.Context, op, query string, arg any) (*domain.VehicleDetail, error) {
	var v domain.VehicleDetail
	if err := conn(ctx, r.db).GetContext(ctx, &v, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

func (r *pgVehicleRepository) FindForUpdate(ctx context.Context, id int) (*domain.Vehicle, error) {
	var v domain.Vehicle
	query := `SELECT id, cliente_id, placa, marca, modelo, color FROM vehiculos WHERE id = $1 FOR UPDATE`
	if err := conn(ctx, r.db).GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindForUpdate: %w", err)
	}
	return &v, nil
}

func (r *pgVehicleRepository) List(ctx context.Context) ([]domain.VehicleDetail, error) {
	vehicles := []domain.VehicleDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &vehicles, vehicleDetailSelect+` ORDER BY v.placa`); err != nil {
		return nil, fmt.Errorf("VehicleRepository.List: %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	query := `UPDATE vehiculos SET cliente_id = $2, placa = $3, marca = $4, modelo = $5, color = $6 WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, v.ID, v.ClienteID, v.Placa, v.Marca, v.Modelo, v.Color)
	if err != nil {
		if isUniqueViolation(err, "vehiculos_placa_key") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlate, v.Placa)
		}
		return nil, fmt.Errorf("VehicleRepository.Update: %w", err)
	}
	if err := expectOne(res, "VehicleRepository.Update"); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *pgVehicleRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "VehicleRepository.Delete", "vehiculos", id)
}

func (r *pgVehicleRepository) CountByClient(ctx context.Context, clientID int) (int, error) {
	return count(ctx, r.db, "VehicleRepository.CountByClient", `SELECT COUNT(*) FROM vehiculos WHERE cliente_id = $1`, clientID)
}
