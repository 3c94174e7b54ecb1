package model

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultTermDays is the membership term applied when no expiry is supplied.
const DefaultTermDays = 365

// DefaultExpiringWindowDays is the "expiring soon" window.
const DefaultExpiringWindowDays = 30

// DateOf drops the time-of-day and returns the UTC calendar date of t as UTC
// midnight. Every "today" comparison in the service goes through here.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate converts t to a calendar date column value.
func NewDate(t time.Time) datatypes.Date {
	return datatypes.Date(DateOf(t))
}

// NewDatePtr is NewDate for nullable columns.
func NewDatePtr(t time.Time) *datatypes.Date {
	d := NewDate(t)
	return &d
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return DateOf(time.Time(d)).Format(time.DateOnly)
}

// FormatDatePtr is FormatDate for nullable columns; nil renders as nil.
func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// ComputeDefaultExpiry returns joinDate plus DefaultTermDays as a pure day-count add.
func ComputeDefaultExpiry(joinDate time.Time) time.Time {
	return DateOf(joinDate).AddDate(0, 0, DefaultTermDays)
}

// ApplyDefaultExpiry sets ExpireDate from JoinDate when it is absent.
func (m *Member) ApplyDefaultExpiry() {
	if m.ExpireDate != nil {
		return
	}
	m.ExpireDate = NewDatePtr(ComputeDefaultExpiry(time.Time(m.JoinDate)))
}

func (m *Member) expireDate() (time.Time, bool) {
	if m.ExpireDate == nil {
		return time.Time{}, false
	}
	return DateOf(time.Time(*m.ExpireDate)), true
}

// IsExpired reports whether the membership has no expiry or it lies before today.
func (m *Member) IsExpired(today time.Time) bool {
	expire, ok := m.expireDate()
	if !ok {
		return true
	}
	return expire.Before(DateOf(today))
}

// IsValid requires the active flag and an expiry on or after today.
func (m *Member) IsValid(today time.Time) bool {
	if !m.IsActive {
		return false
	}
	expire, ok := m.expireDate()
	return ok && !expire.Before(DateOf(today))
}

// IsExpiringSoon reports whether the expiry falls within [today, today+windowDays].
func (m *Member) IsExpiringSoon(today time.Time, windowDays int) bool {
	expire, ok := m.expireDate()
	if !ok {
		return false
	}
	start := DateOf(today)
	end := start.AddDate(0, 0, windowDays)
	return !expire.Before(start) && !expire.After(end)
}

// Membership status labels
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Status is "Active" when an expiry exists and is on or after today, otherwise "Expired".
func (m *Member) Status(today time.Time) string {
	expire, ok := m.expireDate()
	if ok && !expire.Before(DateOf(today)) {
		return StatusActive
	}
	return StatusExpired
}
