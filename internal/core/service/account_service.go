package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// AccountService implements account management. The caller identity is read
// from the request context on every operation; the account-creation rule is
// a function of the creator role and the target username suffix:
//
//	dev    → may create .dev, .gestor and .view accounts
//	gestor → may create only .view accounts
//	view   → may create nothing
//
// The suffix format check runs before any role restriction so a malformed
// target username is always reported as a format error, never as a
// permission error.
type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Usuario, error) {
	creator, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if !domain.ValidAccountSuffix(input.Username) {
		return nil, domain.ErrTargetSuffix
	}

	switch domain.RoleOf(creator) {
	case domain.RoleDev:
		// any recognized suffix
	case domain.RoleGestor:
		if domain.RoleFromUsername(input.Username) != domain.RoleView {
			return nil, domain.ErrGestorTarget
		}
	default:
		return nil, domain.ErrForbidden
	}

	if input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.Usuario{
		Username:     input.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("creator", creator.Username).Msg("account created")
	return created, nil
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Usuario, error) {
	if _, err := callerIdentity(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update applies an explicit typed patch. Developer accounts can only be
// modified by developers; a new username goes through the same suffix and
// creator-role checks as creation; a new password is re-hashed, never copied.
func (s *AccountService) Update(ctx context.Context, id string, input ports.UpdateAccountInput) (*domain.Usuario, error) {
	caller, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	callerRole := domain.RoleOf(caller)
	if domain.RoleFromUsername(target.Username) == domain.RoleDev && callerRole != domain.RoleDev {
		return nil, domain.ErrDevEditDenied
	}

	if input.Username != nil {
		if !domain.ValidAccountSuffix(*input.Username) {
			return nil, domain.ErrTargetSuffix
		}
		switch callerRole {
		case domain.RoleDev:
		case domain.RoleGestor:
			if domain.RoleFromUsername(*input.Username) != domain.RoleView {
				return nil, domain.ErrGestorTarget
			}
		default:
			return nil, domain.ErrForbidden
		}
		target.Username = *input.Username
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hash)
	}

	target.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	caller, err := callerIdentity(ctx)
	if err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if domain.RoleFromUsername(target.Username) == domain.RoleDev && domain.RoleOf(caller) != domain.RoleDev {
		return domain.ErrDevDelDenied
	}

	return s.repo.Delete(ctx, id)
}

// callerIdentity returns the authenticated identity on ctx. The middleware
// normally guards these paths already; the service still refuses to operate
// without one so it never fails open when wired differently.
func callerIdentity(ctx context.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || !id.Authenticated {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
