package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// LoginInput contains the parameters for starting a CLI session.
type LoginInput struct {
	UserID string // Configured user id from [users.<id>]
}

// LoginOutput contains the identity the session was started for.
type LoginOutput struct {
	Identity domain.Identity
}

// Login is the use case for starting a CLI session as a configured user.
// No credential check happens here; the session file simply records who
// subsequent commands act as. Password checks belong to the HTTP API.
type Login struct {
	config  domain.ConfigLoader
	session domain.SessionProvider
}

// NewLogin creates a new Login use case.
func NewLogin(config domain.ConfigLoader, session domain.SessionProvider) *Login {
	return &Login{config: config, session: session}
}

// Execute resolves the user in the configuration and records the session.
func (uc *Login) Execute(_ context.Context, in LoginInput) (*LoginOutput, error) {
	cfg, err := uc.config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	user, ok := cfg.Users[in.UserID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUserNotFound, in.UserID)
	}

	role := domain.Role(user.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, user.Role)
	}

	id := domain.Identity{ID: in.UserID, Name: user.Name, Email: user.Email, Role: role}
	if err := uc.session.SetCurrent(id); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &LoginOutput{Identity: id}, nil
}
