package worker

import (
	"sync"
	"time"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// NotificationLog tracks when each seller was last reminded so the sweep
// can rate-limit reminder emails per the seller's chosen frequency.
type NotificationLog interface {
	Due(sellerID int64, freq model.ReminderFrequency, now time.Time) bool
	MarkNotified(sellerID int64, now time.Time)
}

// ReminderThrottle is an in-process NotificationLog scoped to the
// sweeper's lifetime. State is lost on restart; the worst case is one
// early reminder, which is an accepted tradeoff.
type ReminderThrottle struct {
	mu   sync.Mutex
	last map[int64]time.Time
}

// NewReminderThrottle constructs an empty throttle.
func NewReminderThrottle() *ReminderThrottle {
	return &ReminderThrottle{last: make(map[int64]time.Time)}
}

// Due reports whether a reminder may fire now. Sellers who were never
// notified are always due; Off is never due.
func (t *ReminderThrottle) Due(sellerID int64, freq model.ReminderFrequency, now time.Time) bool {
	if freq == model.ReminderOff {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.last[sellerID]
	if !ok {
		return true
	}
	return now.Sub(last) >= freq.Interval()
}

// MarkNotified records that a reminder was sent.
func (t *ReminderThrottle) MarkNotified(sellerID int64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[sellerID] = now
}
