package auth

import (
	"net/http"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user   User
	tokens Tokens
	auth   *auth.Auth
}

func NewController(user User, tokens Tokens, a *auth.Auth) *Controller {
	return &Controller{user: user, tokens: tokens, auth: a}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	if data.Email == "" || data.Password == "" {
		return c.RespondError(web.NewRequestError(errors.New("Email and password are required"), http.StatusBadRequest))
	}

	detail, err := uc.user.GetByEmail(c.Ctx, data.Email)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)) != nil {
		return c.RespondError(web.NewRequestError(errors.New("Invalid credentials"), http.StatusUnauthorized))
	}

	role := auth.RoleUser
	if detail.Role != nil {
		role = *detail.Role
	}

	accessToken, err := uc.auth.GenerateToken(detail.ID, role)
	if err != nil {
		return c.RespondError(err)
	}

	refreshToken, tokenID, err := uc.auth.GenerateRefreshToken(detail.ID, role)
	if err != nil {
		return c.RespondError(err)
	}
	if err := uc.tokens.Save(c.Ctx, detail.ID, tokenID); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"data": map[string]interface{}{
			"user":         user.ProfileFromEntity(detail),
			"token":        accessToken,
			"refreshToken": refreshToken,
		},
	}, http.StatusOK)
}

func (uc Controller) Profile(c *web.Context) error {
	detail, err := uc.user.GetProfile(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"user": detail,
		},
	}, http.StatusOK)
}

// RefreshToken rotates a whitelisted refresh token and issues a new pair.
func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	if err := c.BindFunc(&data, "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.auth.ValidateRefreshToken(data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}
	if err := uc.tokens.Check(c.Ctx, claims.UserId, claims.TokenID); err != nil {
		return c.RespondError(err)
	}

	accessToken, err := uc.auth.GenerateToken(claims.UserId, claims.Role)
	if err != nil {
		return c.RespondError(err)
	}

	refreshToken, tokenID, err := uc.auth.GenerateRefreshToken(claims.UserId, claims.Role)
	if err != nil {
		return c.RespondError(err)
	}
	if err := uc.tokens.Save(c.Ctx, claims.UserId, tokenID); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"token":        accessToken,
			"refreshToken": refreshToken,
		},
	}, http.StatusOK)
}

// Logout revokes the caller's refresh token. The access token stays valid
// until it expires; only the long-lived credential is torn down.
func (uc Controller) Logout(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	if err := uc.tokens.Delete(c.Ctx, claims.UserId); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Logged out",
	}, http.StatusOK)
}
