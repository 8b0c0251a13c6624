package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patitas/patitas/backend/api/internal/config"
	"github.com/patitas/patitas/backend/api/internal/models"
	"github.com/patitas/patitas/backend/api/pkg/middleware"
)

// GenerateAccessToken creates a signed JWT access token for the user.
// The subject is the account's hex id so handlers never have to re-resolve
// the caller's identity from the email on every operation.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID.Hex(),
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// JWTVerifier validates self-issued HS256 access tokens. It implements
// middleware.Verifier, the contract the auth middleware depends on.
type JWTVerifier struct {
	secret []byte
}

func NewVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type claimsToken struct {
	claims jwt.MapClaims
}

func (t *claimsToken) Claims(v interface{}) error {
	mm, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims target %T", v)
	}
	*mm = map[string]interface{}(t.claims)
	return nil
}

func (v *JWTVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &claimsToken{claims: claims}, nil
}
