package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"withings-health-sync/internal/domain/devices"
	"withings-health-sync/internal/domain/measurements"
)

type MeasurementsRepo struct {
	db *sql.DB
}

func NewMeasurementsRepo(db *sql.DB) *MeasurementsRepo {
	return &MeasurementsRepo{db: db}
}

// SaveGroups hace upsert de cada grupo y reemplaza sus medidas, en una transacción.
func (r *MeasurementsRepo) SaveGroups(ctx context.Context, groups []measurements.MeasurementGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range groups {
		if g.ID == 0 {
			return errors.New("measurement group id required")
		}

		var deviceID sql.NullString
		if g.DeviceID != nil {
			deviceID = sql.NullString{String: *g.DeviceID, Valid: true}
		}
		var model sql.NullInt64
		if g.Model != nil {
			model = sql.NullInt64{Int64: int64(g.Model.Code()), Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO measurement_groups (id, measured_at, category, attribution, device_id, model, synced_at)
			VALUES ($1,$2,$3,$4,$5,$6,now())
			ON CONFLICT (id) DO UPDATE SET
				measured_at = EXCLUDED.measured_at,
				category    = EXCLUDED.category,
				attribution = EXCLUDED.attribution,
				device_id   = EXCLUDED.device_id,
				model       = EXCLUDED.model,
				synced_at   = EXCLUDED.synced_at
		`,
			g.ID,
			g.MeasuredAt.UTC(),
			int(g.Category),
			int(g.Attribution),
			deviceID,
			model,
		); err != nil {
			return fmt.Errorf("upsert group %d: %w", g.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE group_id = $1`, g.ID); err != nil {
			return fmt.Errorf("clear measures of group %d: %w", g.ID, err)
		}
		for pos, m := range g.Measurements {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO measurements (group_id, position, type, value)
				VALUES ($1,$2,$3,$4)
			`, g.ID, pos, m.Type.Code(), m.Value); err != nil {
				return fmt.Errorf("insert measure %d of group %d: %w", pos, g.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *MeasurementsRepo) ListGroups(ctx context.Context, filter measurements.ListFilter) ([]measurements.MeasurementGroup, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			g.id, g.measured_at, g.category, g.attribution, g.device_id, g.model,
			m.type, m.value
		FROM measurement_groups g
		LEFT JOIN measurements m ON m.group_id = g.id
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND g.measured_at >= $%d", argN))
		args = append(args, filter.From.UTC())
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND g.measured_at <= $%d", argN))
		args = append(args, filter.To.UTC())
		argN++
	}

	sb.WriteString(" ORDER BY g.measured_at ASC, g.id ASC, m.position ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]measurements.MeasurementGroup, 0)
	for rows.Next() {
		var (
			id          int64
			measuredAt  time.Time
			category    int
			attribution int
			deviceID    sql.NullString
			model       sql.NullInt64
			typ         sql.NullInt64
			value       sql.NullFloat64
		)
		if err := rows.Scan(&id, &measuredAt, &category, &attribution, &deviceID, &model, &typ, &value); err != nil {
			return nil, err
		}

		if len(out) == 0 || out[len(out)-1].ID != id {
			g, err := scanGroup(id, measuredAt, category, attribution, deviceID, model)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}

		// LEFT JOIN: grupo sin medidas
		if !typ.Valid {
			continue
		}
		t, err := measurements.ParseMeasurementType(int(typ.Int64))
		if err != nil {
			return nil, err
		}
		last := &out[len(out)-1]
		last.Measurements = append(last.Measurements, measurements.Measurement{Type: t, Value: value.Float64})
	}

	return out, rows.Err()
}

func scanGroup(id int64, measuredAt time.Time, category, attribution int, deviceID sql.NullString, model sql.NullInt64) (measurements.MeasurementGroup, error) {
	c, err := measurements.ParseCategory(category)
	if err != nil {
		return measurements.MeasurementGroup{}, err
	}
	a, err := measurements.ParseAttribution(attribution)
	if err != nil {
		return measurements.MeasurementGroup{}, err
	}

	g := measurements.MeasurementGroup{
		ID:           id,
		MeasuredAt:   measuredAt.UTC(),
		Category:     c,
		Attribution:  a,
		Measurements: []measurements.Measurement{},
	}
	if deviceID.Valid {
		d := deviceID.String
		g.DeviceID = &d
	}
	if model.Valid {
		m, err := devices.ParseModel("model", int(model.Int64))
		if err != nil {
			return measurements.MeasurementGroup{}, err
		}
		g.Model = &m
	}
	return g, nil
}

func (r *MeasurementsRepo) LastSync(ctx context.Context) (time.Time, bool, error) {
	var at time.Time
	err := r.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_state WHERE id = 1`).Scan(&at)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return at.UTC(), true, nil
}

func (r *MeasurementsRepo) SetLastSync(ctx context.Context, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_state (id, last_sync) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_sync = EXCLUDED.last_sync
	`, at.UTC())
	return err
}
