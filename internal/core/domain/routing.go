package domain

import "strings"

// EntityKind identifies a persisted entity type for store routing.
type EntityKind string

const (
	KindEmpresa     EntityKind = "empresas"
	KindTransacao   EntityKind = "transacoes"
	KindNotificacao EntityKind = "notificacoes"
	KindAccount     EntityKind = "accounts"
	KindSession     EntityKind = "sessions"
)

// Store selects one of the two physical databases.
type Store string

const (
	StorePrimary   Store = "default"
	StoreSecondary Store = "tests"
)

// systemKinds always live on the primary store regardless of identity.
// Account and session bookkeeping must not fork per user, otherwise a ".dev"
// user could not log in against the same credential set as everyone else.
var systemKinds = map[EntityKind]struct{}{
	KindAccount: {},
	KindSession: {},
}

// IsSystemKind reports whether kind is pinned to the primary store.
func IsSystemKind(kind EntityKind) bool {
	_, ok := systemKinds[kind]
	return ok
}

// StoreFor decides which store handles an operation on kind for id.
// Authenticated identities whose username ends in ".dev" operate against the
// secondary store; everyone else, including anonymous identities, against the
// primary. The same CNPJ may therefore exist in both stores without
// collision; that is a property of the design, not a bug.
//
// Pure function; callers must invoke it once per operation and never cache
// the result, because the identity can differ between operations even within
// overlapping request lifetimes.
func StoreFor(id Identity, kind EntityKind) Store {
	if IsSystemKind(kind) {
		return StorePrimary
	}
	if id.Authenticated && strings.HasSuffix(id.Username, ".dev") {
		return StoreSecondary
	}
	return StorePrimary
}
