package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
)

func TestValidateNewOrder(t *testing.T) {
	valid := NewOrder{
		ProductID:       1,
		Quantity:        1,
		BuyerName:       "Aisyah",
		BuyerEmail:      "aisyah@example.com",
		BuyerPhone:      "+60123456789",
		ShippingAddress: "12 Jalan Ampang, KL",
		PaymentMethod:   model.PaymentMethodHostedBill,
	}
	if err := ValidateNewOrder(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*NewOrder)
	}{
		{"missing product", func(in *NewOrder) { in.ProductID = 0 }},
		{"zero quantity", func(in *NewOrder) { in.Quantity = 0 }},
		{"blank name", func(in *NewOrder) { in.BuyerName = "  " }},
		{"bad email", func(in *NewOrder) { in.BuyerEmail = "not-an-email" }},
		{"email without domain dot", func(in *NewOrder) { in.BuyerEmail = "a@localhost" }},
		{"blank phone", func(in *NewOrder) { in.BuyerPhone = "" }},
		{"blank address", func(in *NewOrder) { in.ShippingAddress = "" }},
		{"unknown method", func(in *NewOrder) { in.PaymentMethod = "cash" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if err := ValidateNewOrder(in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@b.co", "buyer.name@shop.example.my"}
	for _, e := range good {
		if !validEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	bad := []string{"", "@b.co", "a@", "a b@c.co", "a@nodot"}
	for _, e := range bad {
		if validEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
