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

const paymentDetailSelect = `
SELECT p.id, p.ticket_id, p.tipo_pago_id, p.monto, p.fecha_pago,
       tp.nombre AS tipo_pago_nombre, v.placa, c.nombre AS cliente_nombre
FROM pagos p
LEFT JOIN tipos_pago tp ON tp.id = p.tipo_pago_id
LEFT JOIN tickets t ON t.id = p.ticket_id
LEFT JOIN vehiculos v ON v.id = t.vehiculo_id
LEFT JOIN clientes c ON c.id = v.cliente_id`

type pgPaymentRepository struct {
	db *sqlx.DB
}

func NewPgPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `INSERT INTO pagos (ticket_id, tipo_pago_id, monto, fecha_pago)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		payment.TicketID, payment.TipoPagoID, payment.Monto, payment.FechaPago,
	).Scan(&payment.ID)
	if err != nil {
		if isUniqueViolation(err, "pagos_ticket_id_key") {
			return nil, fmt.Errorf("%w: ticket %d", domain.ErrPaymentAlreadyRegistered, payment.TicketID)
		}
		return nil, fmt.Errorf("PaymentRepository.Create: %w", err)
	}
	return payment, nil
}

func (r *pgPaymentRepository) ExistsForTicket(ctx context.Context, ticketID int) (bool, error) {
	var exists bool
	if err := conn(ctx, r.db).GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM pagos WHERE ticket_id = $1)`, ticketID); err != nil {
		return false, fmt.Errorf("PaymentRepository.ExistsForTicket: %w", err)
	}
	return exists, nil
}

func (r *pgPaymentRepository) FindDetailByID(ctx context.Context, id int) (*domain.PaymentDetail, error) {
	return r.findOne(ctx, "PaymentRepository.FindDetailByID", paymentDetailSelect+` WHERE p.id = $1`, id)
}

func (r *pgPaymentRepository) FindByTicketID(ctx context.Context, ticketID int) (*domain.PaymentDetail, error) {
	return r.findOne(ctx, "PaymentRepository.FindByTicketID", paymentDetailSelect+` WHERE p.ticket_id = $1`, ticketID)
}

func (r *pgPaymentRepository) findOne(ctx context.Context, op, query string, arg any) (*domain.PaymentDetail, error) {
	var p domain.PaymentDetail
	if err := conn(ctx, r.db).GetContext(ctx, &p, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func paymentFilter(f domain.PaymentFilterDTO) *filter {
	w := &filter{}
	if f.FechaInicio != "" {
		w.add("p.fecha_pago::date >= $%d::date", f.FechaInicio)
	}
	if f.FechaFin != "" {
		w.add("p.fecha_pago::date <= $%d::date", f.FechaFin)
	}
	if f.TipoPagoID > 0 {
		w.add("p.tipo_pago_id = $%d", f.TipoPagoID)
	}
	return w
}

func (r *pgPaymentRepository) List(ctx context.Context, f domain.PaymentFilterDTO) ([]domain.PaymentDetail, error) {
	w := paymentFilter(f)
	payments := []domain.PaymentDetail{}
	query := paymentDetailSelect + w.where() + ` ORDER BY p.fecha_pago DESC`
	if err := conn(ctx, r.db).SelectContext(ctx, &payments, query, w.args...); err != nil {
		return nil, fmt.Errorf("PaymentRepository.List: %w", err)
	}
	return payments, nil
}

// Report aggregates the filtered payments three ways. Sums are coalesced so
// an empty range reports zeros instead of NULL.
func (r *pgPaymentRepository) Report(ctx context.Context, f domain.PaymentFilterDTO) (*domain.PaymentReport, error) {
	w := paymentFilter(f)
	q := conn(ctx, r.db)

	report := &domain.PaymentReport{PorTipoPago: []domain.PaymentTypeTotal{}, PorDia: []domain.PaymentDayTotal{}}

	summary := `SELECT COUNT(*) AS total_pagos,
	                   COALESCE(SUM(p.monto), 0) AS total_recaudado,
	                   COALESCE(ROUND(AVG(p.monto), 2), 0) AS promedio_pago,
	                   COALESCE(MIN(p.monto), 0) AS pago_minimo,
	                   COALESCE(MAX(p.monto), 0) AS pago_maximo
	            FROM pagos p` + w.where()
	if err := q.GetContext(ctx, &report.Resumen, summary, w.args...); err != nil {
		return nil, fmt.Errorf("PaymentRepository.Report (summary): %w", err)
	}

	byType := `SELECT tp.nombre AS tipo_pago, COUNT(*) AS cantidad, COALESCE(SUM(p.monto), 0) AS total
	           FROM pagos p
	           JOIN tipos_pago tp ON tp.id = p.tipo_pago_id` + w.where() + `
	           GROUP BY tp.nombre
	           ORDER BY total DESC`
	if err := q.SelectContext(ctx, &report.PorTipoPago, byType, w.args...); err != nil {
		return nil, fmt.Errorf("PaymentRepository.Report (by type): %w", err)
	}

	byDay := `SELECT TO_CHAR(p.fecha_pago::date, 'YYYY-MM-DD') AS fecha, COUNT(*) AS cantidad, COALESCE(SUM(p.monto), 0) AS total
	          FROM pagos p` + w.where() + `
	          GROUP BY p.fecha_pago::date
	          ORDER BY p.fecha_pago::date DESC
	          LIMIT 30`
	if err := q.SelectContext(ctx, &report.PorDia, byDay, w.args...); err != nil {
		return nil, fmt.Errorf("PaymentRepository.Report (by day): %w", err)
	}
	return report, nil
}

func (r *pgPaymentRepository) CountByPaymentType(ctx context.Context, paymentTypeID int) (int, error) {
	return count(ctx, r.db, "PaymentRepository.CountByPaymentType", `SELECT COUNT(*) FROM pagos WHERE tipo_pago_id = $1`, paymentTypeID)
}
