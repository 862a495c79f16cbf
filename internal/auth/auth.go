package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"geoattend/backend/foundation/web"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

type ctxKey int

// Key is used to store and retrieve Claims from a context.Context.
const Key ctxKey = 1

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Tokens are long-lived by design: mobile clients stay signed in for a
// month before re-authenticating.
const (
	accessTokenTTL = 30 * 24 * time.Hour
	// RefreshTokenTTL bounds both the refresh JWT and its Redis whitelist entry.
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the payload of an access token: who the caller is and what
// role they hold.
type Claims struct {
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Authorized reports whether the claims' role is one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// RefreshClaims is the payload of a refresh token. TokenID is matched
// against the Redis whitelist so logout and rotation can revoke it.
type RefreshClaims struct {
	UserId  int    `json:"user_id"`
	Role    string `json:"role"`
	TokenID string `json:"token_id"`
	jwt.StandardClaims
}

type Auth struct {
	secret []byte
}

func New(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

func (a *Auth) GenerateToken(userID int, role string) (string, error) {
	claims := Claims{
		UserId: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing access token")
	}

	return signed, nil
}

// GenerateRefreshToken returns a signed refresh token and its token id. The
// id must be stored in the whitelist for the token to be usable.
func (a *Auth) GenerateRefreshToken(userID int, role string) (string, string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "generating refresh token id")
	}
	tokenID := hex.EncodeToString(buf)

	claims := RefreshClaims{
		UserId:  userID,
		Role:    role,
		TokenID: tokenID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(RefreshTokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return signed, tokenID, nil
}

func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, a.keyFunc)
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return claims, nil
}

func (a *Auth) ValidateRefreshToken(tokenStr string) (RefreshClaims, error) {
	var claims RefreshClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, a.keyFunc)
	if err != nil || !token.Valid {
		return RefreshClaims{}, errors.New("invalid refresh token")
	}
	return claims, nil
}

func (a *Auth) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return a.secret, nil
}

// GetClaims pulls the authenticated caller's claims out of the context.
// Requests that reach this point without claims skipped the middleware.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
