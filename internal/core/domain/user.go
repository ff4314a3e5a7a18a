package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnauthenticated    = errors.New("authentication required")

	// User-facing permission errors. The messages are part of the API
	// contract consumed by the front-end and must stay verbatim.
	ErrForbidden     = errors.New("Sem permissão.")
	ErrTargetSuffix  = errors.New("O usuário deve terminar em .dev, .gestor ou .view")
	ErrGestorTarget  = errors.New("Gestores só podem criar usuários do tipo Visitante (.view).")
	ErrDevEditDenied = errors.New("Você não tem permissão para editar um desenvolvedor.")
	ErrDevDelDenied  = errors.New("Você não tem permissão para excluir um desenvolvedor.")
)

// Usuario models a stored account. Accounts are system-reserved: they always
// live on the primary store so that every user logs in against the same
// credential set no matter which store their data is routed to.
type Usuario struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidAccountSuffix reports whether username ends in one of the three
// recognized role suffixes. Account creation rejects anything else as a
// format error before any role-based restriction is evaluated.
func ValidAccountSuffix(username string) bool {
	return RoleFromUsername(username) != RoleNone
}
