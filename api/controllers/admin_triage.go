package controllers

import (
	"net/http"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/internal/triage"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
)

func triageUnavailable(svc triage.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "triage service unavailable"))
		return true
	}
	return false
}

// AdminStats serves the dashboard counter block.
func AdminStats(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if triageUnavailable(svc, logg, w, r) {
			return
		}
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminNoPhoto serves the grouped missing-photo listing.
func AdminNoPhoto(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if triageUnavailable(svc, logg, w, r) {
			return
		}
		report, err := svc.NoPhoto(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminLowStock serves the grouped low-stock listing.
func AdminLowStock(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if triageUnavailable(svc, logg, w, r) {
			return
		}
		report, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminNoPrice serves the flat missing-price listing.
func AdminNoPrice(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if triageUnavailable(svc, logg, w, r) {
			return
		}
		report, err := svc.NoPrice(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminNoBrand serves the flat missing-brand listing.
func AdminNoBrand(svc triage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if triageUnavailable(svc, logg, w, r) {
			return
		}
		report, err := svc.NoBrand(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
