package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"

	"github.com/jmoiron/sqlx"
)

const accessLogDetailSelect = `
SELECT h.id, h.usuario_id, h.accion, h.fecha,
       u.nombre AS usuario_nombre, u.correo AS usuario_correo, r.nombre AS rol_nombre
FROM historial_accesos h
LEFT JOIN usuarios u ON u.id = h.usuario_id
LEFT JOIN roles r ON r.id = u.rol_id`

const defaultAccessLogLimit = 100

type pgAccessLogRepository struct {
	db *sqlx.DB
}

func NewPgAccessLogRepository(db *sqlx.DB) repository.AccessLogRepository {
	return &pgAccessLogRepository{db: db}
}

func (r *pgAccessLogRepository) Create(ctx context.Context, entry *domain.AccessLog) (*domain.AccessLog, error) {
	query := `INSERT INTO historial_accesos (usuario_id, accion, fecha) VALUES ($1, $2, $3) RETURNING id`
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, entry.UsuarioID, entry.Accion, entry.Fecha).Scan(&entry.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, entry.UsuarioID)
		}
		return nil, fmt.Errorf("AccessLogRepository.Create: %w", err)
	}
	return entry, nil
}

func (r *pgAccessLogRepository) FindByID(ctx context.Context, id int) (*domain.AccessLogDetail, error) {
	var d domain.AccessLogDetail
	if err := conn(ctx, r.db).GetContext(ctx, &d, accessLogDetailSelect+` WHERE h.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("AccessLogRepository.FindByID: %w", err)
	}
	return &d, nil
}

func accessLogFilter(f domain.AccessLogFilterDTO) *filter {
	w := &filter{}
	if f.UsuarioID > 0 {
		w.add("h.usuario_id = $%d", f.UsuarioID)
	}
	if f.Accion != "" {
		w.add("h.accion = $%d", f.Accion)
	}
	if f.FechaInicio != "" {
		w.add("h.fecha::date >= $%d::date", f.FechaInicio)
	}
	if f.FechaFin != "" {
		w.add("h.fecha::date <= $%d::date", f.FechaFin)
	}
	return w
}

func (r *pgAccessLogRepository) List(ctx context.Context, f domain.AccessLogFilterDTO) ([]domain.AccessLogDetail, error) {
	w := accessLogFilter(f)
	limit := f.Limit
	if limit <= 0 {
		limit = defaultAccessLogLimit
	}
	query := accessLogDetailSelect + w.where() + ` ORDER BY h.fecha DESC LIMIT ` + w.next(limit)
	out := []domain.AccessLogDetail{}
	if err := conn(ctx, r.db).SelectContext(ctx, &out, query, w.args...); err != nil {
		return nil, fmt.Errorf("AccessLogRepository.List: %w", err)
	}
	return out, nil
}

func (r *pgAccessLogRepository) Stats(ctx context.Context, f domain.AccessLogFilterDTO) (*domain.AccessStats, error) {
	w := accessLogFilter(f)
	q := conn(ctx, r.db)

	stats := &domain.AccessStats{PorAccion: []domain.AccessActionStat{}, PorDia: []domain.AccessDayStat{}}
	totals := `SELECT COUNT(*) AS total_accesos,
	                  COUNT(DISTINCT h.usuario_id) AS usuarios_unicos,
	                  COUNT(*) FILTER (WHERE h.accion = 'LOGIN') AS total_logins,
	                  COUNT(*) FILTER (WHERE h.accion = 'LOGOUT') AS total_logouts
	           FROM historial_accesos h` + w.where()
	if err := q.GetContext(ctx, stats, totals, w.args...); err != nil {
		return nil, fmt.Errorf("AccessLogRepository.Stats (totals): %w", err)
	}

	byAction := `SELECT h.accion, COUNT(*) AS cantidad FROM historial_accesos h` + w.where() + `
	             GROUP BY h.accion ORDER BY cantidad DESC`
	if err := q.SelectContext(ctx, &stats.PorAccion, byAction, w.args...); err != nil {
		return nil, fmt.Errorf("AccessLogRepository.Stats (by action): %w", err)
	}

	byDay := `SELECT TO_CHAR(h.fecha::date, 'YYYY-MM-DD') AS fecha, COUNT(*) AS cantidad
	          FROM historial_accesos h` + w.where() + `
	          GROUP BY h.fecha::date ORDER BY h.fecha::date DESC LIMIT 30`
	if err := q.SelectContext(ctx, &stats.PorDia, byDay, w.args...); err != nil {
		return nil, fmt.Errorf("AccessLogRepository.Stats (by day): %w", err)
	}
	return stats, nil
}

func (r *pgAccessLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM historial_accesos WHERE fecha < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("AccessLogRepository.DeleteOlderThan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("AccessLogRepository.DeleteOlderThan (rows affected): %w", err)
	}
	return n, nil
}
