package dto

// ReminderRequest updates the seller's reminder frequency.
type ReminderRequest struct {
	Frequency string `json:"frequency"`
}
