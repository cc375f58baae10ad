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

type pgClientRepository struct {
	db *sqlx.DB
}

func NewPgClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &pgClientRepository{db: db}
}

func (r *pgClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query := `INSERT INTO clientes (nombre, telefono, correo, nit) VALUES ($1, $2, $3, $4) RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, client.Nombre, client.Telefono, client.Correo, client.NIT).Scan(&client.ID)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Create: %w", err)
	}
	return client, nil
}

func (r *pgClientRepository) FindByID(ctx context.Context, id int) (*domain.Client, error) {
	var c domain.Client
	err := conn(ctx, r.db).GetContext(ctx, &c, `SELECT id, nombre, telefono, correo, nit FROM clientes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ClientRepository.FindByID: %w", err)
	}
	return &c, nil
}

func (r *pgClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	clients := []domain.Client{}
	if err := conn(ctx, r.db).SelectContext(ctx, &clients, `SELECT id, nombre, telefono, correo, nit FROM clientes ORDER BY nombre`); err != nil {
		return nil, fmt.Errorf("ClientRepository.List: %w", err)
	}
	return clients, nil
}

func (r *pgClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query := `UPDATE clientes SET nombre = $2, telefono = $3, correo = $4, nit = $5 WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, client.ID, client.Nombre, client.Telefono, client.Correo, client.NIT)
	if err != nil {
		return nil, fmt.Errorf("ClientRepository.Update: %w", err)
	}
	if err := expectOne(res, "ClientRepository.Update"); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *pgClientRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "ClientRepository.Delete", "clientes", id)
}
