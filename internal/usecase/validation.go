package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
)

// ValidateNewOrder checks buyer input before any state is touched.
func ValidateNewOrder(in NewOrder) error {
	switch {
	case in.ProductID <= 0:
		return fmt.Errorf("%w: product id is required", domainErrors.ErrValidation)
	case in.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", domainErrors.ErrValidation)
	case strings.TrimSpace(in.BuyerName) == "":
		return fmt.Errorf("%w: buyer name is required", domainErrors.ErrValidation)
	case !validEmail(in.BuyerEmail):
		return fmt.Errorf("%w: buyer email is malformed", domainErrors.ErrValidation)
	case strings.TrimSpace(in.BuyerPhone) == "":
		return fmt.Errorf("%w: buyer phone is required", domainErrors.ErrValidation)
	case strings.TrimSpace(in.ShippingAddress) == "":
		return fmt.Errorf("%w: shipping address is required", domainErrors.ErrValidation)
	case !in.PaymentMethod.Valid():
		return fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrValidation, in.PaymentMethod)
	}
	return nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return !strings.ContainsAny(email, " \t") && strings.Contains(domain, ".")
}
