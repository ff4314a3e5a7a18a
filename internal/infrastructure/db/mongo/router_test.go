package mongo

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// testStores builds store handles without touching a live server; the driver
// only dials on the first operation.
func testStores(t *testing.T) *Stores {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return &Stores{
		Primary:   client.Database("registro"),
		Secondary: client.Database("registro_tests"),
	}
}

func TestStoreRouter_Database(t *testing.T) {
	router := NewStoreRouter(testStores(t), zerolog.Nop())

	dev := domain.WithIdentity(context.Background(), domain.Identity{Username: "a.dev", Authenticated: true})
	gestor := domain.WithIdentity(context.Background(), domain.Identity{Username: "b.gestor", Authenticated: true})
	anon := domain.WithIdentity(context.Background(), domain.Identity{})

	cases := []struct {
		name string
		ctx  context.Context
		kind domain.EntityKind
		want string
	}{
		{"dev empresa", dev, domain.KindEmpresa, "registro_tests"},
		{"dev transacao", dev, domain.KindTransacao, "registro_tests"},
		{"gestor empresa", gestor, domain.KindEmpresa, "registro"},
		{"anonymous empresa", anon, domain.KindEmpresa, "registro"},
		{"dev account pinned to primary", dev, domain.KindAccount, "registro"},
		{"no identity falls back to primary", context.Background(), domain.KindEmpresa, "registro"},
	}
	for _, tc := range cases {
		if got := router.Database(tc.ctx, tc.kind).Name(); got != tc.want {
			t.Errorf("%s: routed to %q, want %q", tc.name, got, tc.want)
		}
	}
}

// The router must re-resolve per call: alternating identities on the same
// router alternate stores.
func TestStoreRouter_PerCallResolution(t *testing.T) {
	router := NewStoreRouter(testStores(t), zerolog.Nop())

	dev := domain.WithIdentity(context.Background(), domain.Identity{Username: "a.dev", Authenticated: true})
	view := domain.WithIdentity(context.Background(), domain.Identity{Username: "c.view", Authenticated: true})

	if router.Database(dev, domain.KindEmpresa).Name() != "registro_tests" {
		t.Fatalf("dev call routed wrong")
	}
	if router.Database(view, domain.KindEmpresa).Name() != "registro" {
		t.Fatalf("view call routed wrong")
	}
	if router.Database(dev, domain.KindEmpresa).Name() != "registro_tests" {
		t.Fatalf("second dev call routed wrong")
	}
}
