package domain

import "testing"

func TestStoreFor(t *testing.T) {
	dev := Identity{ID: "1", Username: "alice.dev", Authenticated: true}
	gestor := Identity{ID: "2", Username: "bob.gestor", Authenticated: true}
	view := Identity{ID: "3", Username: "carol.view", Authenticated: true}
	anon := Identity{}
	fakeDev := Identity{Username: "mallory.dev", Authenticated: false}

	cases := []struct {
		name string
		id   Identity
		kind EntityKind
		want Store
	}{
		{"dev empresa goes to tests", dev, KindEmpresa, StoreSecondary},
		{"dev transacao goes to tests", dev, KindTransacao, StoreSecondary},
		{"dev notificacao goes to tests", dev, KindNotificacao, StoreSecondary},
		{"gestor empresa stays primary", gestor, KindEmpresa, StorePrimary},
		{"view transacao stays primary", view, KindTransacao, StorePrimary},
		{"anonymous stays primary", anon, KindEmpresa, StorePrimary},
		{"unauthenticated dev username stays primary", fakeDev, KindEmpresa, StorePrimary},
		{"accounts pinned to primary even for dev", dev, KindAccount, StorePrimary},
		{"sessions pinned to primary even for dev", dev, KindSession, StorePrimary},
	}
	for _, tc := range cases {
		if got := StoreFor(tc.id, tc.kind); got != tc.want {
			t.Errorf("%s: StoreFor = %s, want %s", tc.name, got, tc.want)
		}
	}
}

// The decision must depend only on its arguments: two calls with different
// identities interleaved in any order give independent answers.
func TestStoreFor_PerOperation(t *testing.T) {
	dev := Identity{Username: "a.dev", Authenticated: true}
	other := Identity{Username: "b.gestor", Authenticated: true}

	if StoreFor(dev, KindEmpresa) != StoreSecondary {
		t.Fatalf("first dev call routed wrong")
	}
	if StoreFor(other, KindEmpresa) != StorePrimary {
		t.Fatalf("interleaved gestor call routed wrong")
	}
	if StoreFor(dev, KindEmpresa) != StoreSecondary {
		t.Fatalf("second dev call routed wrong")
	}
}

func TestIsSystemKind(t *testing.T) {
	if !IsSystemKind(KindAccount) || !IsSystemKind(KindSession) {
		t.Fatalf("accounts and sessions must be system kinds")
	}
	if IsSystemKind(KindEmpresa) || IsSystemKind(KindTransacao) || IsSystemKind(KindNotificacao) {
		t.Fatalf("business kinds must not be system kinds")
	}
}
