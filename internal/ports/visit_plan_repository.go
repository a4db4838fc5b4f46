package ports

import (
	"context"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
)

// Port: persistence for materialized visit plans.
type VisitPlanRepository interface {
	SaveVisitPlan(ctx context.Context, plan *domain.VisitPlan) error
	GetVisitPlan(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error)
}
