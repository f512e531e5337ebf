package model

import "time"

// ReminderFrequency controls how often a seller is reminded about pending
// receipts. Off excludes the seller from the reminder sweep entirely.
type ReminderFrequency string

const (
	ReminderOff       ReminderFrequency = "off"
	ReminderEvery30s  ReminderFrequency = "30s"
	ReminderEvery30m  ReminderFrequency = "30m"
	ReminderEveryHour ReminderFrequency = "1h"
	DefaultReminder                     = ReminderEvery30m
)

// Valid reports whether the value is a known frequency.
func (f ReminderFrequency) Valid() bool {
	switch f {
	case ReminderOff, ReminderEvery30s, ReminderEvery30m, ReminderEveryHour:
		return true
	}
	return false
}

// Interval returns the minimum gap between reminders. Unset or unknown
// values fall back to the default; Off returns 0.
func (f ReminderFrequency) Interval() time.Duration {
	switch f {
	case ReminderOff:
		return 0
	case ReminderEvery30s:
		return 30 * time.Second
	case ReminderEveryHour:
		return time.Hour
	case ReminderEvery30m:
		return 30 * time.Minute
	default:
		return 30 * time.Minute
	}
}

// Seller is a provisioned merchant account. Registration is handled out of
// band; the engine only authenticates and notifies sellers.
type Seller struct {
	ID                int64
	Login             string
	PasswordHash      string
	Email             string
	PaymentTarget     string
	ReminderFrequency ReminderFrequency
	CreatedAt         time.Time
}
