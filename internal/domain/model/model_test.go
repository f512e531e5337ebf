package model

import (
	"testing"
	"time"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"paid", OrderStatusPaid, "paid"},
		{"processing", OrderStatusProcessing, "processing"},
		{"ready to ship", OrderStatusReadyToShip, "ready_to_ship"},
		{"shipped", OrderStatusShipped, "shipped"},
		{"out for delivery", OrderStatusOutForDelivery, "out_for_delivery"},
		{"delivered", OrderStatusDelivered, "delivered"},
		{"completed", OrderStatusCompleted, "completed"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
		{"returned", OrderStatusReturned, "returned"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("shippedd").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestOrderTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusPaid},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusPaid, OrderStatusProcessing},
		{OrderStatusPaid, OrderStatusReturned},
		{OrderStatusProcessing, OrderStatusReadyToShip},
		{OrderStatusReadyToShip, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusOutForDelivery},
		{OrderStatusOutForDelivery, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusCompleted},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPaid, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusPaid},
		{OrderStatusCompleted, OrderStatusReturned},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCancelled, OrderStatusCompleted, OrderStatusReturned} {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped} {
		if s.Terminal() {
			t.Fatalf("expected %s not to be terminal", s)
		}
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodHostedBill, PaymentMethodBankRedirect, PaymentMethodManualReceipt} {
		if !m.Valid() {
			t.Fatalf("expected %s to be valid", m)
		}
	}
	if PaymentMethod("paypal").Valid() {
		t.Fatal("expected unknown method to be invalid")
	}
}

func TestReminderFrequencyInterval(t *testing.T) {
	cases := []struct {
		freq ReminderFrequency
		want time.Duration
	}{
		{ReminderOff, 0},
		{ReminderEvery30s, 30 * time.Second},
		{ReminderEvery30m, 30 * time.Minute},
		{ReminderEveryHour, time.Hour},
		{ReminderFrequency(""), 30 * time.Minute},
		{ReminderFrequency("weekly"), 30 * time.Minute},
	}
	for _, tc := range cases {
		if got := tc.freq.Interval(); got != tc.want {
			t.Fatalf("frequency %q: expected %s, got %s", tc.freq, tc.want, got)
		}
	}
}

func TestReminderFrequencyValid(t *testing.T) {
	for _, f := range []ReminderFrequency{ReminderOff, ReminderEvery30s, ReminderEvery30m, ReminderEveryHour} {
		if !f.Valid() {
			t.Fatalf("expected %s to be valid", f)
		}
	}
	if ReminderFrequency("15m").Valid() {
		t.Fatal("expected unknown frequency to be invalid")
	}
}
