package inquiry

import (
	"context"
	"fmt"
	"strings"

	"github.com/calzalindo/catalog-backend/pkg/config"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
)

// Service exposes the inquiry cart operations.
type Service interface {
	GetCart(ctx context.Context, cartID string) (*Cart, error)
	AddItem(ctx context.Context, cartID string, item LineItem) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*Cart, error)
	Clear(ctx context.Context, cartID string) error
	WhatsAppLink(ctx context.Context, cartID string) (string, error)
}

type service struct {
	store *Store
	cfg   config.InquiryConfig
}

// NewService constructs an inquiry service instance.
func NewService(store *Store, cfg config.InquiryConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("inquiry store required")
	}
	return &service{store: store, cfg: cfg}, nil
}

func validateCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "a cart id is required")
	}
	return nil
}

// GetCart loads the cart, which is empty when nothing was saved.
func (s *service) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, cartID)
}

// AddItem appends the line unless an equivalent one exists. The returned
// cart reflects the saved state either way.
func (s *service) AddItem(ctx context.Context, cartID string, item LineItem) (*Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a line item id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a product name is required")
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Add(item) {
		if err := s.store.Save(ctx, cartID, cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// RemoveItem drops the line by id. Removing an absent id leaves the cart
// untouched.
func (s *service) RemoveItem(ctx context.Context, cartID, itemID string) (*Cart, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Remove(itemID) {
		if err := s.store.Save(ctx, cartID, cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Clear deletes the saved cart.
func (s *service) Clear(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	return s.store.Delete(ctx, cartID)
}

// WhatsAppLink renders the deep link for a non-empty cart.
func (s *service) WhatsAppLink(ctx context.Context, cartID string) (string, error) {
	if err := validateCartID(cartID); err != nil {
		return "", err
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return "", err
	}
	if cart.Len() == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "the inquiry cart is empty")
	}
	return BuildLink(s.cfg.WhatsAppNumber, cart), nil
}
