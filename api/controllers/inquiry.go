package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/api/validators"
	"github.com/calzalindo/catalog-backend/internal/inquiry"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
)

type inquiryItemRequest struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"nombre" validate:"required"`
	Brand *string `json:"marca"`
	Color string  `json:"color" validate:"required"`
	Size  string  `json:"talle" validate:"required"`
	Price float64 `json:"precio" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

func inquiryUnavailable(svc inquiry.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
		return true
	}
	return false
}

// InquiryGet returns the saved cart, empty when nothing was stored.
func InquiryGet(svc inquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inquiryUnavailable(svc, logg, w, r) {
			return
		}
		cart, err := svc.GetCart(r.Context(), chi.URLParam(r, "cartId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// InquiryAddItem appends a line to the cart; duplicates are a no-op.
func InquiryAddItem(svc inquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inquiryUnavailable(svc, logg, w, r) {
			return
		}

		var body inquiryItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddItem(r.Context(), chi.URLParam(r, "cartId"), inquiry.LineItem{
			ID:    body.ID,
			Name:  body.Name,
			Brand: body.Brand,
			Color: body.Color,
			Size:  body.Size,
			Price: body.Price,
			Stock: body.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// InquiryRemoveItem drops a line by id; an absent id is a no-op.
func InquiryRemoveItem(svc inquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inquiryUnavailable(svc, logg, w, r) {
			return
		}
		cart, err := svc.RemoveItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// InquiryClear deletes the whole cart.
func InquiryClear(svc inquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inquiryUnavailable(svc, logg, w, r) {
			return
		}
		if err := svc.Clear(r.Context(), chi.URLParam(r, "cartId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"cleared": true})
	}
}

// InquiryWhatsAppLink renders the wa.me deep link for a non-empty cart.
func InquiryWhatsAppLink(svc inquiry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if inquiryUnavailable(svc, logg, w, r) {
			return
		}
		link, err := svc.WhatsAppLink(r.Context(), chi.URLParam(r, "cartId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"url": link})
	}
}
