package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/platform/obs"
)

// SQL-backed implementation of the VisitPlanRepository port.
type SQLVisitPlanRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLVisitPlanRepository(conn *sql.DB, dialect db.Dialect) *SQLVisitPlanRepository {
	return &SQLVisitPlanRepository{DB: conn, Dialect: dialect}
}

// Store a plan and its visits, replacing any previous version with the same id.
func (s *SQLVisitPlanRepository) SaveVisitPlan(ctx context.Context, plan *domain.VisitPlan) (err error) {
	defer obs.Time(ctx, "visit_plans.Save")(&err)

	if s.DB == nil {
		return errors.New("visit plan repository: DB is nil")
	}
	if plan == nil {
		return errors.New("save visit plan: plan is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save visit plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertPlan := `
	INSERT INTO visit_plans (
		plan_id,
		representative_id,
		visit_date,
		prioritized,
		total_distance_km,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (plan_id) DO UPDATE
	SET representative_id = EXCLUDED.representative_id,
		visit_date = EXCLUDED.visit_date,
		prioritized = EXCLUDED.prioritized,
		total_distance_km = EXCLUDED.total_distance_km;
	`
	planID := plan.ID.String()
	if _, err := tx.ExecContext(ctx, db.Rebind(s.Dialect, upsertPlan),
		planID,
		plan.RepresentativeID,
		plan.VisitDate.Format(dateLayout),
		plan.Prioritized,
		plan.TotalDistanceKm,
		plan.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("save visit plan %s: upsert plan: %w", planID, err)
	}

	if _, err := tx.ExecContext(ctx, db.Rebind(s.Dialect, `DELETE FROM visits WHERE plan_id = ?;`), planID); err != nil {
		return fmt.Errorf("save visit plan %s: clear visits: %w", planID, err)
	}

	stmt, err := tx.PrepareContext(ctx, db.Rebind(s.Dialect, `
	INSERT INTO visits (plan_id, seq, outlet_id)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save visit plan %s: prepare insert: %w", planID, err)
	}
	defer stmt.Close()

	for _, v := range plan.Visits {
		if _, err := stmt.ExecContext(ctx, planID, v.Sequence, v.OutletID); err != nil {
			return fmt.Errorf("save visit plan %s: insert visit seq=%d: %w", planID, v.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save visit plan %s: commit tx: %w", planID, err)
	}

	return nil
}

func (s *SQLVisitPlanRepository) GetVisitPlan(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error) {
	if s.DB == nil {
		return nil, errors.New("visit plan repository: DB is nil")
	}

	planID := id.String()
	query := `
	SELECT representative_id, visit_date, prioritized, total_distance_km, created_at
	FROM visit_plans
	WHERE plan_id = ?;
	`

	var (
		plan      = domain.VisitPlan{ID: id}
		visitDate string
		createdAt string
	)
	err := s.DB.QueryRowContext(ctx, db.Rebind(s.Dialect, query), planID).Scan(
		&plan.RepresentativeID,
		&visitDate,
		&plan.Prioritized,
		&plan.TotalDistanceKm,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get visit plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get visit plan %s: %w", planID, err)
	}

	if plan.VisitDate, err = time.Parse(dateLayout, visitDate); err != nil {
		return nil, fmt.Errorf("get visit plan %s: parse visit_date %q: %w", planID, visitDate, err)
	}
	if plan.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("get visit plan %s: parse created_at %q: %w", planID, createdAt, err)
	}

	rows, err := s.DB.QueryContext(ctx, db.Rebind(s.Dialect, `
	SELECT seq, outlet_id
	FROM visits
	WHERE plan_id = ?
	ORDER BY seq;
	`), planID)
	if err != nil {
		return nil, fmt.Errorf("get visit plan %s: query visits: %w", planID, err)
	}
	defer rows.Close()

	plan.Visits = make([]domain.Visit, 0, 16)
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(&v.Sequence, &v.OutletID); err != nil {
			return nil, fmt.Errorf("get visit plan %s: scan visit: %w", planID, err)
		}
		plan.Visits = append(plan.Visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get visit plan %s: row iteration: %w", planID, err)
	}

	return &plan, nil
}
