package domain

import "strings"

// Role is the access tier of an identity.
type Role string

const (
	RoleDev    Role = "dev"
	RoleGestor Role = "gestor"
	RoleView   Role = "view"
	RoleNone   Role = "none"
)

// RoleFromUsername derives the role from the username suffix after the last
// dot: ".dev" → RoleDev, ".gestor" → RoleGestor, ".view" → RoleView. Anything
// else, including usernames without a dot, resolves to RoleNone.
//
// The suffix convention is a load-bearing business rule, not an incidental
// naming detail: account creation (AccountService) and store routing
// (StoreFor) both depend on exact suffix matches. It is recomputed on every
// call and must never be cached across requests.
func RoleFromUsername(username string) Role {
	i := strings.LastIndex(username, ".")
	if i < 0 {
		return RoleNone
	}
	switch username[i+1:] {
	case "dev":
		return RoleDev
	case "gestor":
		return RoleGestor
	case "view":
		return RoleView
	default:
		return RoleNone
	}
}

// RoleOf resolves the role of an identity. No role is granted to an
// unauthenticated identity regardless of its username.
func RoleOf(id Identity) Role {
	if !id.Authenticated {
		return RoleNone
	}
	return RoleFromUsername(id.Username)
}

// CanMutate reports whether the role may create, update or delete records.
func (r Role) CanMutate() bool {
	return r == RoleDev || r == RoleGestor
}
