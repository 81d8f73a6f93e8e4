package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/auth"
	"github.com/calzalindo/catalog-backend/pkg/config"
)

func adminTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Admin: config.AdminConfig{PasswordHash: "hunter2"},
	}
}

func TestAdminAuthLogin(t *testing.T) {
	cfg := adminTestConfig()
	handler := AdminAuthLogin(cfg, testLogger())

	postLogin := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing password", func(t *testing.T) {
		rec := postLogin(`{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty body, got %d", rec.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postLogin(`{"password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := postLogin(`{"password":"hunter2","extra":true}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := postLogin(`{"password":"hunter2"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for valid login, got %d", rec.Code)
		}

		var payload struct {
			Data struct {
				Token     string    `json:"token"`
				ExpiresAt time.Time `json:"expires_at"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if payload.Data.Token == "" {
			t.Fatal("expected a signed token")
		}
		if payload.Data.ExpiresAt.Before(time.Now().Add(55 * time.Minute)) {
			t.Fatalf("expected expiry near one hour out, got %s", payload.Data.ExpiresAt)
		}

		claims, err := auth.ParseAdminToken(cfg.JWT, payload.Data.Token)
		if err != nil {
			t.Fatalf("parsing minted token: %v", err)
		}
		if claims.Scope != auth.ScopeAdmin {
			t.Fatalf("expected admin scope, got %q", claims.Scope)
		}
	})
}
