package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// SignUpInput carries self-registration data. Role may be "buyer" or
// "producer"; empty defaults to producer. Admin cannot be requested here.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements credential verification and account registration.
// SignIn must fail identically for unknown emails and wrong passwords.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, *domain.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	RequestPasswordReset(ctx context.Context, email string) error
}
