package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"visit-route-service/internal/ports"
)

// maxConcurrentPlans bounds repository load from a single batch.
const maxConcurrentPlans = 5

// PlanVisitsBatch plans several representative/day pairs concurrently.
// Results are returned in request order. The first failure cancels the
// remaining requests and is returned.
func PlanVisitsBatch(
	ctx context.Context,
	reqs []PlanVisitsRequest,
	outlets ports.OutletRepository,
	plans ports.VisitPlanRepository,
) ([]*PlannedVisits, error) {
	results := make([]*PlannedVisits, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlans)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := PlanVisits(gctx, req, outlets, plans)
			if err != nil {
				return fmt.Errorf("plan visits batch: request #%d (representative %d): %w", i+1, req.RepresentativeID, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
