package controllers

import (
	"net/http"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/api/validators"
	"github.com/calzalindo/catalog-backend/internal/images"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
)

type migrateImagesRequest struct {
	Limit  int `json:"limite" validate:"omitempty,gte=0"`
	Offset int `json:"offset" validate:"omitempty,gte=0"`
}

type updateImageRequest struct {
	Code     int    `json:"codigo" validate:"required,gte=1"`
	ImageURL string `json:"imagen_url" validate:"required"`
}

// AdminMigrateImages runs one page of the image back-fill job. The caller
// drives pagination with the returned siguienteOffset.
func AdminMigrateImages(svc images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "images service unavailable"))
			return
		}

		var body migrateImagesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.MigratePage(r.Context(), body.Limit, body.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminUpdateImage assigns an image URL to every row sharing a code.
func AdminUpdateImage(svc images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "images service unavailable"))
			return
		}

		var body updateImageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateImage(r.Context(), body.Code, body.ImageURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
