package mongo

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestaoverbas/registro-system/internal/api/metrics"
	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// StoreRouter resolves the physical database for each operation from the
// identity on the request context. The decision is delegated to
// domain.StoreFor and made fresh per call; repositories must not cache the
// returned handle across operations.
type StoreRouter struct {
	stores *Stores
	log    zerolog.Logger
}

func NewStoreRouter(stores *Stores, log zerolog.Logger) *StoreRouter {
	return &StoreRouter{stores: stores, log: log}
}

// Database returns the store that must handle an operation on kind.
//
// When no identity was installed on ctx at all — the auth middleware did not
// run — the primary store is used as a safe default. That fallback is logged
// and counted rather than ignored, because it usually masks an
// authentication wiring problem upstream.
func (r *StoreRouter) Database(ctx context.Context, kind domain.EntityKind) *mongo.Database {
	if domain.IsSystemKind(kind) {
		return r.stores.Primary
	}

	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		metrics.RoutingFallbackTotal.Inc()
		r.log.Warn().Str("entity", string(kind)).Msg("no identity on request context, falling back to primary store")
		return r.stores.Primary
	}

	if domain.StoreFor(id, kind) == domain.StoreSecondary {
		return r.stores.Secondary
	}
	return r.stores.Primary
}
