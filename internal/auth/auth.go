package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
)

// User is the request-scoped identity resolved by the auth middleware and
// passed explicitly into service calls.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsHR reports whether the user may review permit requests.
func (u *User) IsHR() bool {
	return u.Role == userDatamodel.RoleHR || u.Role == userDatamodel.RoleAdmin
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates tokens. Access and refresh tokens are
// signed with separate secrets and each validator only accepts its own kind.
type TokenGenerator interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
