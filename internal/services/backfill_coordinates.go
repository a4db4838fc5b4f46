package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

// BackfillResult counts outlets, not geocoder calls: a run that completes
// has Candidates == FromCache + Geocoded + Failed.
type BackfillResult struct {
	Candidates int
	FromCache  int
	Geocoded   int
	Failed     int
	// Updated holds the outlets whose coordinates were written, located.
	Updated []domain.Outlet
}

// BackfillCoordinates resolves coordinates for outlets that have an address
// but were never geocoded, consulting the cache before the geocoder.
// Individual lookup failures are logged and counted; the outlet simply stays
// unroutable until the next run. Fresh geocoder results reach the cache even
// when the run stops early.
func BackfillCoordinates(
	ctx context.Context,
	repo ports.OutletRepository,
	geocoder ports.Geocoder,
	cache ports.GeocodeCache,
) (_ BackfillResult, err error) {
	defer obs.Time(ctx, "services.BackfillCoordinates")(&err)

	var res BackfillResult
	if geocoder == nil {
		return res, errors.New("backfill coordinates: geocoder is nil")
	}

	pending, err := repo.ListUngeocodedOutlets(ctx)
	if err != nil {
		return res, fmt.Errorf("backfill coordinates: list outlets: %w", err)
	}
	res.Candidates = len(pending)
	if len(pending) == 0 {
		return res, nil
	}

	addresses := make([]string, 0, len(pending))
	for _, o := range pending {
		addresses = append(addresses, domain.NormalizeAddress(o.Address))
	}

	hits := make(map[string]domain.GeoPoint)
	if cache != nil {
		hits, err = cache.GetMany(ctx, addresses)
		if err != nil {
			return res, fmt.Errorf("backfill coordinates: read geocode cache: %w", err)
		}
	}

	fresh := make(map[string]domain.GeoPoint)
	failed := make(map[string]bool)
	defer func() {
		if cache == nil || len(fresh) == 0 {
			return
		}
		if err := cache.PutMany(context.WithoutCancel(ctx), fresh); err != nil {
			log.Warn().Err(err).Int("entries", len(fresh)).Msg("geocode cache write failed")
		}
	}()

	for i, o := range pending {
		addr := addresses[i]

		p, ok := hits[addr]
		switch {
		case ok:
			res.FromCache++
		case failed[addr]:
			res.Failed++
			continue
		default:
			if p, ok = fresh[addr]; !ok {
				p, err = geocoder.Geocode(ctx, addr)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return res, fmt.Errorf("backfill coordinates: %w", ctxErr)
					}
					failed[addr] = true
					res.Failed++
					log.Warn().Err(err).Int64("outlet_id", o.ID).Str("address", addr).Msg("geocode failed")
					continue
				}
				fresh[addr] = p
			}
			res.Geocoded++
		}

		if err := repo.UpdateOutletCoordinates(ctx, o.ID, p); err != nil {
			return res, fmt.Errorf("backfill coordinates: %w", err)
		}
		res.Updated = append(res.Updated, o.WithPoint(p))
	}

	log.Info().
		Int("candidates", res.Candidates).
		Int("from_cache", res.FromCache).
		Int("geocoded", res.Geocoded).
		Int("failed", res.Failed).
		Msg("coordinate backfill finished")

	return res, nil
}
