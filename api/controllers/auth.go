package controllers

import (
	"net/http"
	"time"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/api/validators"
	"github.com/calzalindo/catalog-backend/pkg/auth"
	"github.com/calzalindo/catalog-backend/pkg/config"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/calzalindo/catalog-backend/pkg/security"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type adminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminAuthLogin checks the shared back-office credential and mints an
// admin token.
func AdminAuthLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adminLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !security.VerifyAdminPassword(body.Password, cfg.Admin.PasswordHash) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		now := time.Now()
		token, err := auth.MintAdminToken(cfg.JWT, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token"))
			return
		}

		responses.WriteSuccess(w, adminLoginResponse{
			Token:     token,
			ExpiresAt: now.Add(time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute),
		})
	}
}
