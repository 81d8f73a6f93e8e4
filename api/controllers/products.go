package controllers

import (
	"net/http"
	"strings"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/api/validators"
	"github.com/calzalindo/catalog-backend/internal/catalog"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
)

// maxSearchLen caps free-text search terms before they reach the DB.
const maxSearchLen = 120

// parseCatalogQuery maps the storefront's query parameters onto a catalog
// query. Parameter names follow the retailer frontend.
func parseCatalogQuery(r *http.Request) (catalog.Query, error) {
	q := catalog.Query{
		Search:       validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
		Department:   strings.TrimSpace(r.URL.Query().Get("rubro")),
		Subcategory:  strings.TrimSpace(r.URL.Query().Get("subrubro")),
		Brand:        strings.TrimSpace(r.URL.Query().Get("marca")),
		Size:         strings.TrimSpace(r.URL.Query().Get("talle")),
		PhotoMissing: validators.ParseQueryBool(r, "sinFoto") || validators.ParseQueryBool(r, "only_photo_missing"),
		Sort:         catalog.ParseSort(r.URL.Query().Get("orden")),
	}

	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1<<30)
	if err != nil {
		return catalog.Query{}, err
	}
	q.Limit = limit

	if q.PriceMin, err = validators.ParseQueryFloat(r, "precioMin"); err != nil {
		return catalog.Query{}, err
	}
	if q.PriceMax, err = validators.ParseQueryFloat(r, "precioMax"); err != nil {
		return catalog.Query{}, err
	}
	return q, nil
}

// CatalogProducts serves the flat product listing. With only_filters=true
// it returns the distinct facet values instead.
func CatalogProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		q, err := parseCatalogQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if validators.ParseQueryBool(r, "only_filters") {
			facets, err := svc.ListFacets(r.Context(), q)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"filtros": facets})
			return
		}

		products, err := svc.ListProducts(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"productos": products})
	}
}

// CatalogFamilies serves the grouped family view with commercial prices.
func CatalogFamilies(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		q, err := parseCatalogQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		families, err := svc.ListFamilies(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"familias": families})
	}
}
